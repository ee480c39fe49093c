package dto

type InstructionListResponse struct {
	Instructions map[string]string `json:"instructions"`
}

type SetInstructionRequest struct {
	ModelName   string `json:"model_name" validate:"required"`
	Instruction string `json:"instruction"`
}
