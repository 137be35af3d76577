package dto

type AddSkillRequest struct {
	SkillName   string  `json:"skill_name" validate:"required,min=1"`
	Proficiency float64 `json:"proficiency" validate:"gte=0,lte=1"`
}
