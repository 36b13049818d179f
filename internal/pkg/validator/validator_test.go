package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestFirstNotIn(t *testing.T) {
	allowed := []string{"instagram", "tiktok"}
	if v, found := FirstNotIn([]string{"tiktok", "myspace", "orkut"}, allowed); !found || v != "myspace" {
		t.Errorf("FirstNotIn() = %q, %v, want myspace, true", v, found)
	}
	if _, found := FirstNotIn([]string{"instagram"}, allowed); found {
		t.Errorf("FirstNotIn() found an invalid value in an allowed set")
	}
	if _, found := FirstNotIn(nil, allowed); found {
		t.Errorf("FirstNotIn(nil) found a value")
	}
}

func TestIsInRange(t *testing.T) {
	cases := []struct {
		value float64
		want  bool
	}{
		{-1, false},
		{0, true},
		{55.5, true},
		{100, true},
		{100.01, false},
	}
	for _, c := range cases {
		if got := IsInRange(c.value, 0, 100); got != c.want {
			t.Errorf("IsInRange(%v, 0, 100) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	valid := []string{"2024-06-01", "2024-06-01T10:00:00Z", "2024-06-01T10:00:00+07:00"}
	invalid := []string{"next week", "2024/06/01", ""}
	for _, s := range valid {
		if _, ok := ParseDeadline(s); !ok {
			t.Errorf("ParseDeadline(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := ParseDeadline(s); ok {
			t.Errorf("ParseDeadline(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "required"},
		{Field: "budget", Message: "must not be negative"},
	}
	got := errs.Error()
	want := "title: required; budget: must not be negative"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "required"},
		{Field: "budget", Message: "must not be negative"},
	}
	got := errs.ToMap()
	want := map[string]string{"title": "required", "budget": "must not be negative"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
