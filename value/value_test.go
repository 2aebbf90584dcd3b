package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty string", String(""), false},
		{"non-empty string", String("0"), true},
		{"zero number", Number(0), true},
		{"empty array", Array(nil), false},
		{"non-empty array", Array([]Value{Null}), true},
		{"empty object", FromObject(NewObject()), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Truthy(); got != c.want {
				t.Errorf("Truthy() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Array([]Value{Number(1), String("x")})
	b := Array([]Value{Number(1), String("x")})
	if !Equal(a, b) {
		t.Fatal("expected equal arrays to compare equal")
	}

	o1 := NewObject()
	o1.Set("a", Number(1))
	o1.Set("b", Number(2))
	o2 := NewObject()
	o2.Set("b", Number(2))
	o2.Set("a", Number(1))
	if !Equal(FromObject(o1), FromObject(o2)) {
		t.Fatal("expected objects with same pairs in different insertion order to be equal")
	}

	if Equal(Number(1), String("1")) {
		t.Fatal("expected different kinds to never be equal")
	}
}

func TestDecodePreservesObjectOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z":1,"a":2,"m":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindObject {
		t.Fatalf("expected object, got %v", v.Kind())
	}
	var keys []string
	for pair := v.AsObject().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestDecodeArray(t *testing.T) {
	v, err := Decode([]byte(`[1, "two", null, true, [3]]`))
	if err != nil {
		t.Fatal(err)
	}
	arr := v.AsArray()
	if len(arr) != 5 {
		t.Fatalf("len = %d, want 5", len(arr))
	}
	if arr[0].AsNumber() != 1 {
		t.Errorf("arr[0] = %v", arr[0])
	}
	if arr[1].AsString() != "two" {
		t.Errorf("arr[1] = %v", arr[1])
	}
	if !arr[2].IsNull() {
		t.Errorf("arr[2] = %v, want null", arr[2])
	}
	if arr[3].AsBool() != true {
		t.Errorf("arr[3] = %v", arr[3])
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	v, err := Decode([]byte(`{"a":1,"b":[1,2,3],"c":"hi"}`))
	if err != nil {
		t.Fatal(err)
	}
	got := Encode(v)
	want := `{"a":1,"b":[1,2,3],"c":"hi"}`
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}
