package dto

type SelectRoadmapRequest struct {
	DomainID string `json:"domain_id" validate:"required,min=1"`
}

type UpdateMilestoneRequest struct {
	Status string `json:"status" validate:"required,oneof=not_started in_progress completed"`
}
