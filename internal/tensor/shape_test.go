package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1}, // scalar
		{Shape{4}, 4},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
		{Shape{2, 0, 4}, 0},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Shape{2,3}.Validate() = %v, want nil", err)
	}
	// Zero-sized dimensions are legal: the host may hand over an
	// empty blob.
	if err := (Shape{2, 0}).Validate(); err != nil {
		t.Errorf("Shape{2,0}.Validate() = %v, want nil", err)
	}
	if err := (Shape{2, -1}).Validate(); err == nil {
		t.Error("Shape{2,-1}.Validate() = nil, want error")
	}
}

func TestShapeEqual(t *testing.T) {
	if !(Shape{2, 3}).Equal(Shape{2, 3}) {
		t.Error("Shape{2,3} should equal Shape{2,3}")
	}
	if (Shape{2, 3}).Equal(Shape{3, 2}) {
		t.Error("Shape{2,3} should not equal Shape{3,2}")
	}
	if (Shape{2, 3}).Equal(Shape{2, 3, 1}) {
		t.Error("Shape{2,3} should not equal Shape{2,3,1}")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{4}, []int{1}},
		{Shape{2, 3}, []int{3, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Errorf("Shape%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Shape%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Error("Clone should not share backing storage")
	}
}

func TestCanonicalAxis(t *testing.T) {
	tests := []struct {
		axis, rank int
		want       int
		wantErr    bool
	}{
		{0, 3, 0, false},
		{2, 3, 2, false},
		{-1, 3, 2, false},
		{-3, 3, 0, false},
		{3, 3, 0, true},
		{-4, 3, 0, true},
		{0, 0, 0, true},
	}

	for _, tt := range tests {
		got, err := CanonicalAxis(tt.axis, tt.rank)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CanonicalAxis(%d, %d) = %d, want error", tt.axis, tt.rank, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("CanonicalAxis(%d, %d) error: %v", tt.axis, tt.rank, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CanonicalAxis(%d, %d) = %d, want %d", tt.axis, tt.rank, got, tt.want)
		}
	}
}
