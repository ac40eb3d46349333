package dto

import (
	"errors"
	"mime/multipart"
)

// FillRequest names the files of one template fill. An empty OutputPath
// means the template is rewritten in place.
type FillRequest struct {
	ReportPath   string
	TemplatePath string
	OutputPath   string
}

// Validate performs basic validation on the request
func (r *FillRequest) Validate() error {
	if r.ReportPath == "" {
		return errors.New("report path is required")
	}
	if r.TemplatePath == "" {
		return errors.New("template path is required")
	}
	return nil
}

// UploadRequest represents the multipart upload of the HTTP API.
type UploadRequest struct {
	Report   *multipart.FileHeader `form:"report" binding:"required"`
	Template *multipart.FileHeader `form:"template"`
}

func (r *UploadRequest) Validate(needTemplate bool) error {
	if r.Report == nil {
		return errors.New("report file is required")
	}
	if needTemplate && r.Template == nil {
		return errors.New("template file is required")
	}
	return nil
}
