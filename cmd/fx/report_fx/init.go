package report_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"goforms/internal/api/controllers"
	"goforms/internal/repositories"
	"goforms/internal/services"
)

var Module = fx.Provide(
	provideTemplateRepo, provideQuestionRepo, provideResponseRepo, provideFormRepo,
	provideTemplateResolver, provideReportService, provideReportController,
)

func provideTemplateRepo(db *gorm.DB) repositories.TemplateRepositoryInterface {
	return repositories.NewTemplateRepository(db)
}

func provideQuestionRepo(db *gorm.DB) repositories.QuestionRepositoryInterface {
	return repositories.NewQuestionRepository(db)
}

func provideResponseRepo(db *gorm.DB) repositories.ResponseRepositoryInterface {
	return repositories.NewResponseRepository(db)
}

func provideFormRepo(db *gorm.DB) repositories.FormRepositoryInterface {
	return repositories.NewFormRepository(db)
}

func provideTemplateResolver(templates repositories.TemplateRepositoryInterface) services.TemplateResolverInterface {
	return services.NewTemplateResolver(templates)
}

func provideReportService(
	responses repositories.ResponseRepositoryInterface,
	forms repositories.FormRepositoryInterface,
	questions repositories.QuestionRepositoryInterface,
	resolver services.TemplateResolverInterface,
	mail services.MailServiceInterface,
	feedback services.AIFeedbackServiceInterface,
) services.ReportServiceInterface {
	return services.NewReportService(
		responses, forms, questions, resolver, mail, feedback,
		os.Getenv("REPORT_OUTPUT_DIR"),
	)
}

func provideReportController(reportService services.ReportServiceInterface) *controllers.ReportController {
	return controllers.NewReportController(reportService)
}
