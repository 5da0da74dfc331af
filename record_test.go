package sqlorm_test

import (
	"errors"
	"testing"

	"github.com/tinywasm/sqlorm"
)

func TestRecord(t *testing.T) {
	t.Run("New rejects unknown fields", func(t *testing.T) {
		_, err := userModel().New(map[string]any{"id": "u1", "nickname": "x"})
		if !errors.Is(err, sqlorm.ErrUnknownField) {
			t.Errorf("Expected ErrUnknownField, got %v", err)
		}
	})

	t.Run("Get and Set", func(t *testing.T) {
		r, err := userModel().New(map[string]any{"id": "u1"})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		if v, err := r.Get("id"); err != nil || v != "u1" {
			t.Errorf("Expected id u1, got %v %v", v, err)
		}

		_, err = r.Get("name")
		if !errors.Is(err, sqlorm.ErrNoAttribute) {
			t.Errorf("Expected ErrNoAttribute, got %v", err)
		}

		_, err = r.Get("nickname")
		if !errors.Is(err, sqlorm.ErrUnknownField) {
			t.Errorf("Expected ErrUnknownField, got %v", err)
		}

		if err := r.Set("name", "Alice"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if v, _ := r.Get("name"); v != "Alice" {
			t.Errorf("Expected name Alice, got %v", v)
		}

		err = r.Set("nickname", "x")
		if !errors.Is(err, sqlorm.ErrUnknownField) {
			t.Errorf("Expected ErrUnknownField, got %v", err)
		}
	})

	t.Run("Value never fails", func(t *testing.T) {
		r, _ := userModel().New(nil)
		if v, ok := r.Value("name"); ok || v != nil {
			t.Errorf("Expected absent, got %v %v", v, ok)
		}
		if _, ok := r.Value("nickname"); ok {
			t.Error("Expected absent for undeclared field")
		}
	})

	t.Run("ValueOrDefault literal", func(t *testing.T) {
		r, _ := userModel().New(nil)
		v, ok := r.ValueOrDefault("admin")
		if !ok || v != false {
			t.Errorf("Expected default false, got %v %v", v, ok)
		}
		if stored, ok := r.Value("admin"); !ok || stored != false {
			t.Errorf("Expected default stored on record, got %v %v", stored, ok)
		}
	})

	t.Run("ValueOrDefault without default", func(t *testing.T) {
		r, _ := userModel().New(nil)
		if v, ok := r.ValueOrDefault("name"); ok || v != nil {
			t.Errorf("Expected absent, got %v %v", v, ok)
		}
		if _, ok := r.Value("name"); ok {
			t.Error("Expected nothing stored")
		}
	})

	t.Run("ValueOrDefault keeps stored values", func(t *testing.T) {
		r, _ := userModel().New(map[string]any{"admin": true})
		if v, _ := r.ValueOrDefault("admin"); v != true {
			t.Errorf("Expected stored true, got %v", v)
		}
	})

	t.Run("ValueOrDefault replaces nil", func(t *testing.T) {
		r, _ := userModel().New(map[string]any{"admin": nil})
		if v, ok := r.ValueOrDefault("admin"); !ok || v != false {
			t.Errorf("Expected default false, got %v %v", v, ok)
		}
	})

	t.Run("Producer default is memoized", func(t *testing.T) {
		calls := 0
		m := sqlorm.MustDeclare("Event",
			sqlorm.IntegerField("id", sqlorm.PrimaryKey(), sqlorm.Default(func() any {
				calls++
				return int64(calls * 100)
			})),
		)

		r, _ := m.New(nil)
		first, _ := r.ValueOrDefault("id")
		second, _ := r.ValueOrDefault("id")
		if first != second {
			t.Errorf("Expected memoized value, got %v then %v", first, second)
		}
		if calls != 1 {
			t.Errorf("Expected producer called once, got %d", calls)
		}

		other, _ := m.New(nil)
		if v, _ := other.ValueOrDefault("id"); v == first {
			t.Errorf("Expected a fresh value for another record, got %v", v)
		}
	})

	t.Run("Map is a copy", func(t *testing.T) {
		r, _ := userModel().New(map[string]any{"id": "u1"})
		m := r.Map()
		m["id"] = "changed"
		if v, _ := r.Get("id"); v != "u1" {
			t.Errorf("Expected record unchanged, got %v", v)
		}
		if r.Model().Schema().Name() != "User" {
			t.Errorf("Expected model User, got %s", r.Model().Schema().Name())
		}
	})
}

func TestRecordZeroValue(t *testing.T) {
	var r sqlorm.Record

	if _, err := r.Get("id"); !errors.Is(err, sqlorm.ErrNilModel) {
		t.Errorf("Expected ErrNilModel from Get, got %v", err)
	}
	if err := r.Set("id", "u1"); !errors.Is(err, sqlorm.ErrNilModel) {
		t.Errorf("Expected ErrNilModel from Set, got %v", err)
	}
	if v, ok := r.ValueOrDefault("id"); ok || v != nil {
		t.Errorf("Expected absent, got %v %v", v, ok)
	}
	if _, ok := r.Value("id"); ok {
		t.Error("Expected absent value")
	}

	var m sqlorm.Model
	if _, err := m.New(map[string]any{"id": "u1"}); !errors.Is(err, sqlorm.ErrNilModel) {
		t.Errorf("Expected ErrNilModel from New, got %v", err)
	}
}

func TestErrorDetail(t *testing.T) {
	r, _ := userModel().New(nil)
	_, err := r.Get("nickname")
	if !errors.Is(err, sqlorm.ErrUnknownField) {
		t.Fatalf("Expected ErrUnknownField, got %v", err)
	}
	if err.Error() != "unknown field nickname in User" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
