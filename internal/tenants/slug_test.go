package tenants

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fresh Fruits":          "fresh-fruits",
		"  Ravi's   Bakery!! ":  "ravi-s-bakery",
		"Green--Leaf Nursery 2": "green-leaf-nursery-2",
		"Café Monde":            "caf-monde",
		"!!!":                   "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
