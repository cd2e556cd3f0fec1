package shared_test

import (
	"regexp"
	"testing"

	"github.com/lovedesignwork/skyrock-sub001/shared"
	"github.com/lovedesignwork/skyrock-sub001/shared/constant"
	"github.com/lovedesignwork/skyrock-sub001/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "division with remainder",
			total:    101,
			limit:    10,
			expected: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	result := shared.BuildCacheKey("catalog", "package", "abc")
	expected := "catalog:package:abc"

	if result != expected {
		t.Errorf("expected %s, got %s", expected, result)
	}
}

func TestTransformFields(t *testing.T) {
	type payload struct {
		Status string `db:"status"`
		Note   string `db:"note"`
		Skip   string
	}

	fields := shared.TransformFields(payload{Status: "confirmed", Skip: "ignored"}, "webhook")

	if fields["status"] != "confirmed" {
		t.Errorf("expected status to be confirmed, got %v", fields["status"])
	}

	if _, ok := fields["note"]; ok {
		t.Error("expected zero-value field to be omitted")
	}

	if fields[constant.FieldModifiedBy] != "webhook" {
		t.Errorf("expected modified_by to be webhook, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestGenerateReference(t *testing.T) {
	pattern := regexp.MustCompile(`^SR-\d{6}$`)

	for range 20 {
		ref := shared.GenerateReference("SR")
		if !pattern.MatchString(ref) {
			t.Errorf("reference %s does not match expected format", ref)
		}
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("some-id", "id", "bookings")

	if len(group.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatal("expected filter to be a dto.Filter")
	}

	if filter.Field != "id" || filter.Value != "some-id" || filter.Table != "bookings" {
		t.Errorf("unexpected filter: %+v", filter)
	}

	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected eq operator, got %v", filter.Operator)
	}
}
