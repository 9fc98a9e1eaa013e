package v1

import "github.com/vigia-app/vigia-backend/internal/models"

// ModelToReportResponse converts a domain report into the response DTO.
func ModelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:          model.ID,
		UserID:      model.UserID,
		Category:    string(model.Category),
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Description: model.Description,
		PhotoURL:    model.PhotoURL,
		PoliceFolio: model.PoliceFolio,
		Verified:    model.Verified,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToReportResponses converts a slice of reports into response DTOs.
func ModelsToReportResponses(reports []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, model := range reports {
		responses[i] = ModelToReportResponse(model)
	}
	return responses
}

// ModelToNeighborhoodResponse converts a leaderboard entry into its DTO.
func ModelToNeighborhoodResponse(model *models.Neighborhood) *NeighborhoodResponse {
	return &NeighborhoodResponse{
		ID:              model.ID,
		Name:            model.Name,
		TotalReports:    model.TotalReports,
		VerifiedReports: model.VerifiedReports,
		VerifiedPercent: model.VerifiedPercent(),
		CurrentPrize:    model.CurrentPrize,
	}
}

// ModelsToNeighborhoodResponses converts a slice of leaderboard entries.
func ModelsToNeighborhoodResponses(entries []*models.Neighborhood) []*NeighborhoodResponse {
	responses := make([]*NeighborhoodResponse, len(entries))
	for i, model := range entries {
		responses[i] = ModelToNeighborhoodResponse(model)
	}
	return responses
}

// ModelsToSOSEventResponses converts persisted SOS emissions into DTOs.
func ModelsToSOSEventResponses(events []*models.SOSEvent) []*SOSEventResponse {
	responses := make([]*SOSEventResponse, len(events))
	for i, model := range events {
		responses[i] = &SOSEventResponse{
			ID:        model.ID,
			Latitude:  model.Latitude,
			Longitude: model.Longitude,
			AudioURL:  model.AudioURL,
			CreatedAt: model.CreatedAt,
		}
	}
	return responses
}
