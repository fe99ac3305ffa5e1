package prompt

import "testing"

func TestConfirmAssumeYes(t *testing.T) {
	ok, err := Confirm("Migrate?", "", true)
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v; want true, nil", ok, err)
	}
}
