package cases

import (
	"testing"
	"time"
)

func TestNormalizeFieldAliasing(t *testing.T) {
	tests := []struct {
		name           string
		input          CreateInput
		wantPetitioner string
		wantRespondent string
	}{
		{
			name: "camelCase only",
			input: CreateInput{
				PetitionerName: "Ram Prasad",
				RespondentName: "State of UP",
			},
			wantPetitioner: "Ram Prasad",
			wantRespondent: "State of UP",
		},
		{
			name: "legacy lowercase only",
			input: CreateInput{
				LegacyPetitionerName: "Ram Prasad",
				LegacyRespondentName: "State of UP",
			},
			wantPetitioner: "Ram Prasad",
			wantRespondent: "State of UP",
		},
		{
			name: "camelCase wins over legacy",
			input: CreateInput{
				PetitionerName:       "Ram Prasad",
				LegacyPetitionerName: "Shyam Lal",
				RespondentName:       "State of UP",
				LegacyRespondentName: "Union of India",
			},
			wantPetitioner: "Ram Prasad",
			wantRespondent: "State of UP",
		},
		{
			name: "names trimmed",
			input: CreateInput{
				PetitionerName: "  Ram Prasad  ",
				RespondentName: "\tState of UP\n",
			},
			wantPetitioner: "Ram Prasad",
			wantRespondent: "State of UP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.input.normalize()
			if n.PetitionerName != tt.wantPetitioner {
				t.Errorf("petitioner = %q, want %q", n.PetitionerName, tt.wantPetitioner)
			}
			if n.RespondentName != tt.wantRespondent {
				t.Errorf("respondent = %q, want %q", n.RespondentName, tt.wantRespondent)
			}
		})
	}
}

func TestNormalizeDepartmentCoercion(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   int
		wantOK bool
	}{
		{"json number", float64(7), 7, true},
		{"numeric string", "42", 42, true},
		{"padded numeric string", " 3 ", 3, true},
		{"non-numeric string", "seven", 0, false},
		{"missing", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceDepartment(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("coerceDepartment(%v) = (%d, %v), want (%d, %v)",
					tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeSubDepartmentFiltering(t *testing.T) {
	valid1 := "507f1f77bcf86cd799439011"
	valid2 := "507f191e810c19729de860ea"

	input := CreateInput{
		SubDepartments: []string{valid1, "not-an-id", "", "507f1f77", valid2},
	}
	n := input.normalize()

	if len(n.SubDepartments) != 2 {
		t.Fatalf("expected 2 valid sub-departments, got %d", len(n.SubDepartments))
	}
	if n.SubDepartments[0] != valid1 || n.SubDepartments[1] != valid2 {
		t.Errorf("unexpected filtered ids: %v", n.SubDepartments)
	}

	// Singular field derived from the first valid entry
	if n.SubDepartment != valid1 {
		t.Errorf("singular sub-department = %q, want %q", n.SubDepartment, valid1)
	}
}

func TestNormalizeSingularSubDepartmentExplicit(t *testing.T) {
	valid1 := "507f1f77bcf86cd799439011"
	valid2 := "507f191e810c19729de860ea"

	input := CreateInput{
		SubDepartment:  valid2,
		SubDepartments: []string{valid1},
	}
	n := input.normalize()

	if n.SubDepartment != valid2 {
		t.Errorf("explicit singular field should win, got %q", n.SubDepartment)
	}
}

func TestNormalizeDates(t *testing.T) {
	input := CreateInput{
		FilingDate:       "2024-01-15",
		HearingDate:      "garbage",
		AffidavitDueDate: "",
	}
	n := input.normalize()

	if n.FilingDate == nil {
		t.Fatal("filing date should parse")
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !n.FilingDate.Equal(want) {
		t.Errorf("filing date = %v, want %v", n.FilingDate, want)
	}

	// Invalid and empty optional dates collapse to absent
	if n.HearingDate != nil {
		t.Error("unparseable hearing date should collapse to nil")
	}
	if n.AffidavitDueDate != nil {
		t.Error("empty affidavit due date should collapse to nil")
	}
}

func TestNormalizeRFC3339Date(t *testing.T) {
	input := CreateInput{FilingDate: "2024-06-01T10:30:00Z"}
	n := input.normalize()
	if n.FilingDate == nil {
		t.Fatal("RFC3339 filing date should parse")
	}
}

func TestValidateMissingFields(t *testing.T) {
	input := CreateInput{}
	n := input.normalize()
	verr := n.validate()
	if verr == nil {
		t.Fatal("expected validation error")
	}

	want := []string{
		"petitionerName",
		"respondentName",
		"filingDate (valid date)",
		"department (number)",
	}
	if len(verr.Details) != len(want) {
		t.Fatalf("details = %v, want %v", verr.Details, want)
	}
	for i, d := range want {
		if verr.Details[i] != d {
			t.Errorf("details[%d] = %q, want %q", i, verr.Details[i], d)
		}
	}
}

func TestValidateDefaultStatus(t *testing.T) {
	input := CreateInput{
		PetitionerName: "A",
		RespondentName: "B",
		FilingDate:     "2024-01-01",
		Department:     float64(1),
	}
	n := input.normalize()
	if verr := n.validate(); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if n.Status != "Pending" {
		t.Errorf("status = %q, want Pending", n.Status)
	}
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	input := CreateInput{
		PetitionerName: "A",
		RespondentName: "B",
		FilingDate:     "2024-01-01",
		Department:     float64(1),
		Status:         "Closed",
	}
	n := input.normalize()
	verr := n.validate()
	if verr == nil {
		t.Fatal("expected validation error for unknown status")
	}
}
