package program_test

import (
	"strings"
	"testing"

	"fittrack/internal/domain/program"
)

// TestProgram_Validate tests validation of Program.
func TestProgram_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prog    program.Program
		wantErr bool
	}{
		{
			name:    "valid free program",
			prog:    program.Program{TrainerID: "t-1", Title: "5K Plan", Description: "Run three times a week", IsFree: true},
			wantErr: false,
		},
		{
			name:    "valid paid program",
			prog:    program.Program{TrainerID: "t-1", Title: "Marathon", Description: "16 weeks"},
			wantErr: false,
		},
		{
			name:    "missing trainer",
			prog:    program.Program{Title: "5K Plan", Description: "x"},
			wantErr: true,
		},
		{
			name:    "whitespace title",
			prog:    program.Program{TrainerID: "t-1", Title: "   ", Description: "x"},
			wantErr: true,
		},
		{
			name:    "empty description",
			prog:    program.Program{TrainerID: "t-1", Title: "5K Plan"},
			wantErr: true,
		},
		{
			name:    "title too long",
			prog:    program.Program{TrainerID: "t-1", Title: strings.Repeat("t", 201), Description: "x"},
			wantErr: true,
		},
		{
			name:    "multibyte title at the limit",
			prog:    program.Program{TrainerID: "t-1", Title: strings.Repeat("é", 200), Description: "x"},
			wantErr: false,
		},
		{
			name:    "multibyte title over the limit",
			prog:    program.Program{TrainerID: "t-1", Title: strings.Repeat("é", 201), Description: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prog.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Program.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
