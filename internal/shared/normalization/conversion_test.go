package normalization

import (
	"reflect"
	"testing"
)

func TestMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, nil},
		{"string", " Stand not found ", []string{"Stand not found"}},
		{"blank string", "   ", nil},
		{"list", []any{"name should not be empty", "", "price must be a number"}, []string{"name should not be empty", "price must be a number"}},
		{"typed list", []string{"a", " "}, []string{"a"}},
		{"other", 42.0, nil},
	}
	for _, tc := range cases {
		if got := Messages(tc.input); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %#v got %#v", tc.name, tc.want, got)
		}
	}
}

func TestRemoveEmpty(t *testing.T) {
	t.Parallel()

	empty := ""
	got := RemoveEmpty(map[string]any{
		"username": "budi",
		"password": "",
		"nickname": nil,
		"bio":      &empty,
		"age":      0,
	})
	want := map[string]any{"username": "budi", "age": 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v got %#v", want, got)
	}
}

func TestAsString(t *testing.T) {
	t.Parallel()

	if AsString(7.0) != "7" || AsString(" x ") != "x" || AsString(nil) != "" || AsString(int64(12)) != "12" {
		t.Fatal("unexpected AsString conversion")
	}
}
