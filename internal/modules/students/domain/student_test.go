package domain

import "testing"

func TestAccountUpdateBodyDropsBlankFields(t *testing.T) {
	t.Parallel()

	body := AccountUpdate{Username: " budi ", Password: ""}.Body()
	if len(body) != 1 || body["username"] != "budi" {
		t.Fatalf("unexpected body: %#v", body)
	}
	if _, ok := body["password"]; ok {
		t.Fatal("blank password must not be sent")
	}

	if len((AccountUpdate{}).Body()) != 0 {
		t.Fatal("empty update must produce an empty body")
	}
}

func TestFormValidate(t *testing.T) {
	t.Parallel()

	if err := (Form{Name: "Budi", Phone: "0812"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Form{Name: " "}).Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}
