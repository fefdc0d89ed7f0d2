package handler

import (
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/internal/offerte/transport"

	"github.com/google/uuid"
)

func stageValues(f *service.Flow, st domain.Stage) any {
	switch st {
	case domain.StageContact:
		return f.Contact.Values()
	case domain.StageLocation:
		return f.Location.Values()
	case domain.StageDetails:
		return f.Details.Values()
	case domain.StageConfirmation:
		return f.Confirmation.Values()
	}
	return nil
}

func stageResponse(f *service.Flow, st domain.Stage) transport.StageResponse {
	ctrl, err := f.Stage(st)
	if err != nil {
		return transport.StageResponse{Stage: st}
	}
	return transport.StageResponse{
		Stage:       st,
		Values:      stageValues(f, st),
		Errors:      ctrl.Errors(),
		Dirty:       ctrl.IsDirty(),
		HasFormData: ctrl.HasFormData(),
		Submitting:  ctrl.Submitting(),
	}
}

func sessionResponse(id uuid.UUID, f *service.Flow) transport.SessionResponse {
	stages := make(map[string]transport.StageResponse, len(domain.Stages))
	for _, st := range domain.Stages {
		stages[string(st)] = stageResponse(f, st)
	}
	return transport.SessionResponse{
		ID:                    id,
		Stages:                stages,
		AllowedWorkCategories: workCategoryOptions(f.Details.AllowedWorkCategories()),
		Uploads:               f.Details.UploadStatusSummary(),
		SubmissionStatus:      f.Confirmation.Status(),
		Valid:                 f.Valid(),
		HasFormData:           f.HasFormData(),
		Summary: transport.SummaryResponse{
			Contact: f.Contact.Summary(),
			Address: f.Location.FormattedAddress(),
			Project: f.Details.ProjectSummary(),
		},
	}
}

func workCategoryOptions(categories []domain.WorkCategory) []transport.WorkCategoryOption {
	out := make([]transport.WorkCategoryOption, 0, len(categories))
	for _, wc := range categories {
		out = append(out, transport.WorkCategoryOption{Key: wc, Label: wc.Label()})
	}
	return out
}
