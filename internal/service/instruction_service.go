package service

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/repository/file"
)

type IInstructionService interface {
	List() *dto.InstructionListResponse
	Set(req *dto.SetInstructionRequest) error
	Remove(model string) error
}

type instructionService struct {
	instructions *file.InstructionRepository
}

func NewInstructionService(instructions *file.InstructionRepository) IInstructionService {
	return &instructionService{instructions: instructions}
}

func (s *instructionService) List() *dto.InstructionListResponse {
	return &dto.InstructionListResponse{Instructions: s.instructions.All()}
}

func (s *instructionService) Set(req *dto.SetInstructionRequest) error {
	if req.Instruction == "" {
		return s.instructions.Remove(req.ModelName)
	}
	return s.instructions.Set(req.ModelName, req.Instruction)
}

func (s *instructionService) Remove(model string) error {
	return s.instructions.Remove(model)
}
