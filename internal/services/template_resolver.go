package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"goforms/internal/models/db_models"
	"goforms/internal/report"
	"goforms/internal/repositories"
)

// TemplateResolverInterface resolves the report template for a form: the
// form-scoped default wins over the global default. Preview/sample responses
// resolve to nil without touching the store, and template content is
// best-effort: lookup or parse problems degrade to "no template" (or a raw
// HTML section) instead of failing report generation.
type TemplateResolverInterface interface {
	Resolve(ctx context.Context, formID string) *report.ResolvedTemplate
}

type TemplateResolver struct {
	templates repositories.TemplateRepositoryInterface
}

func NewTemplateResolver(templates repositories.TemplateRepositoryInterface) TemplateResolverInterface {
	return &TemplateResolver{templates: templates}
}

func (r *TemplateResolver) Resolve(ctx context.Context, formID string) *report.ResolvedTemplate {
	if formID == "" || formID == report.SampleFormID {
		return nil
	}
	fid, err := uuid.Parse(formID)
	if err != nil {
		return nil
	}

	row, err := r.templates.FindDefaultForForm(ctx, fid)
	if err != nil {
		log.Printf("template lookup failed for form %s: %v", formID, err)
		return nil
	}
	if row == nil {
		row, err = r.templates.FindGlobalDefault(ctx)
		if err != nil {
			log.Printf("global template lookup failed: %v", err)
			return nil
		}
	}
	if row == nil {
		return nil
	}
	return parseTemplateContent(row)
}

// parseTemplateContent tries the structured JSON-sections format first and
// falls back to treating the whole content as one HTML blob (legacy rows and
// malformed JSON both land there).
func parseTemplateContent(row *db_models.ReportTemplate) *report.ResolvedTemplate {
	var sections []report.TemplateSection
	err := json.Unmarshal([]byte(row.Content), &sections)
	if err == nil {
		if len(sections) == 0 {
			return nil
		}
		return &report.ResolvedTemplate{Sections: sections}
	}
	if row.Content == "" {
		return nil
	}
	log.Printf("template %s content is not section JSON, using as raw HTML", row.ID)
	return &report.ResolvedTemplate{
		Sections: []report.TemplateSection{{ContentHTML: row.Content}},
	}
}
