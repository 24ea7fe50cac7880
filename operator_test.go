package cursorpage

import "testing"

func Test_Operator_Valid_Inverse_ForOrdering(t *testing.T) {
	tests := []struct {
		name     string
		in       Operator
		valid    bool
		inverse  Operator
		ordering Direction
	}{
		{"GT", OperatorGT, true, OperatorLT, DirectionASC},
		{"LT", OperatorLT, true, OperatorGT, DirectionDESC},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
		if got := tt.in.Inverse(); got != tt.inverse {
			t.Errorf("%s: Inverse=%v want %v", tt.name, got, tt.inverse)
		}
		if got := tt.in.ForOrdering(); got != tt.ordering {
			t.Errorf("%s: ForOrdering=%v want %v", tt.name, got, tt.ordering)
		}
	}

	if Operator("=").Valid() {
		t.Errorf("equality operator reported valid")
	}
}
