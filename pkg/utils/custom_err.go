package utils

import "errors"

var (
	ErrResponseNotFound  = errors.New("response not found")
	ErrInvalidResponseID = errors.New("invalid response id")
	ErrReportGeneration  = errors.New("report generation failed")
	ErrMailDelivery      = errors.New("mail delivery failed")
	ErrNoRecipient       = errors.New("no recipient address")
	ErrDatabaseError     = errors.New("database error")
)
