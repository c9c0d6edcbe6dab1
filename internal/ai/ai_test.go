package ai

import (
	"context"
	"errors"
	"testing"
)

func TestParseCategory_KeywordOrder(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"fruit", CategoryFruit},
		{"This looks like a MEAL to me.", CategoryMeal},
		{"Definitely a snack!", CategorySnack},
		{"juice", CategoryJuice},
		{"a bowl of soup", CategoryOther},
		{"", CategoryOther},
		// "fruit" is checked before "juice": a reply mentioning both maps to fruit.
		{"fruit juice", CategoryFruit},
		// "meal" is checked before "snack".
		{"snack or meal? hard to say", CategoryMeal},
	}

	for _, tc := range cases {
		if got := ParseCategory(tc.in); got != tc.want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCategory_AlwaysInSet(t *testing.T) {
	valid := map[Category]bool{
		CategoryFruit: true, CategoryMeal: true, CategorySnack: true,
		CategoryJuice: true, CategoryOther: true,
	}
	for _, in := range []string{"", "garbage", "FrUiT", "0123", "meal fruit"} {
		if got := ParseCategory(in); !valid[got] {
			t.Fatalf("ParseCategory(%q) returned out-of-set value %q", in, got)
		}
	}
}

func TestDisabledGateway(t *testing.T) {
	gw := Disabled(ErrNoAPIKey)

	if got := gw.ClassifyImage(context.Background(), []byte("img"), "image/jpeg"); got != CategoryOther {
		t.Fatalf("disabled ClassifyImage = %q, want other", got)
	}

	_, err := gw.GenerateText(context.Background(), "prompt", nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("disabled GenerateText err = %v, want ErrNoAPIKey", err)
	}
}

func TestNewGateway_NoKeyReturnsDisabled(t *testing.T) {
	gw, err := NewGateway(context.Background(), "", "")
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}
	if got := gw.ClassifyImage(context.Background(), nil, ""); got != CategoryOther {
		t.Fatalf("keyless gateway should classify as other, got %q", got)
	}
	if _, err := gw.GenerateText(context.Background(), "p", nil); err == nil {
		t.Fatalf("keyless gateway GenerateText should fail")
	}
}
