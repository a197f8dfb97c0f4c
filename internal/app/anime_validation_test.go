package app

import (
	"errors"
	"testing"

	"github.com/autumnleaf-ra/Anime-API/internal/domain"
)

func TestValidateNameQuery(t *testing.T) {
	q, err := ValidateNameQuery([]byte(`{"name":"Naruto","extra":true}`))
	if err != nil {
		t.Fatalf("valid payload: %v", err)
	}
	if q.Name != "Naruto" {
		t.Fatalf("name: want %q, got %q", "Naruto", q.Name)
	}

	for _, payload := range []string{
		`{"movie":"Naruto"}`,
		`{"name":""}`,
		`{"name":42}`,
		`{"name":null}`,
		``,
		`not json`,
		`["Naruto"]`,
	} {
		_, err := ValidateNameQuery([]byte(payload))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("payload %q: want ErrInvalidInput, got %v", payload, err)
		}
		if Classify(err) != OutcomeInvalidInput {
			t.Fatalf("payload %q: Classify got %s", payload, Classify(err))
		}
	}
}

func TestValidateNameQuery_Messages(t *testing.T) {
	_, err := ValidateNameQuery([]byte(`{}`))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
	if vErr.Message != "name is required" {
		t.Fatalf("message: got %q", vErr.Message)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0] != "name" {
		t.Fatalf("fields: got %v", vErr.Fields)
	}
}

func TestValidateGenreQuery(t *testing.T) {
	q, err := ValidateGenreQuery([]byte(`{"genre":"action"}`))
	if err != nil {
		t.Fatalf("string genre: %v", err)
	}
	if len(q.Genre) != 1 || q.Genre[0] != "action" || q.Status != nil {
		t.Fatalf("got %+v", q)
	}

	q, err = ValidateGenreQuery([]byte(`{"genre":["action","comedy"],"status":"ONGOING"}`))
	if err != nil {
		t.Fatalf("array genre + status: %v", err)
	}
	if len(q.Genre) != 2 || q.Status == nil || *q.Status != domain.StatusOngoing {
		t.Fatalf("got %+v", q)
	}

	q, err = ValidateGenreQuery([]byte(`{"genre":[]}`))
	if err != nil {
		t.Fatalf("empty array must be accepted: %v", err)
	}
	if q.Genre == nil || len(q.Genre) != 0 {
		t.Fatalf("want empty non-nil genres, got %#v", q.Genre)
	}
}

func TestValidateGenreQuery_Rejects(t *testing.T) {
	for _, payload := range []string{
		`{}`,
		`{"genre":""}`,
		`{"genre":null}`,
		`{"genre":12}`,
		`{"genre":[1,2]}`,
		`{"genre":{"a":1}}`,
		`{"genre":"action","status":"ongoing"}`,
		`{"genre":"action","status":"AIRING"}`,
		`{"genre":"action","status":""}`,
		`{"genre":"action","status":3}`,
		`{"genre":"action","status":null}`,
	} {
		if _, err := ValidateGenreQuery([]byte(payload)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("payload %s: want ErrInvalidInput, got %v", payload, err)
		}
	}
}

func TestValidateGenreQuery_StatusMessage(t *testing.T) {
	_, err := ValidateGenreQuery([]byte(`{"genre":"action","status":"AIRING"}`))
	want := "status must be one of: FINISHED ONGOING UPCOMING UNKNOWN"
	if err == nil || err.Error() != want {
		t.Fatalf("message: want %q, got %v", want, err)
	}
}

func TestValidateGenreQuery_NullStatus(t *testing.T) {
	_, err := ValidateGenreQuery([]byte(`{"genre":"action","status":null}`))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	want := "status must be one of: FINISHED ONGOING UPCOMING UNKNOWN"
	if vErr.Message != want || len(vErr.Fields) != 1 || vErr.Fields[0] != "status" {
		t.Fatalf("got %q %v", vErr.Message, vErr.Fields)
	}

	q, err := ValidateGenreQuery([]byte(`{"genre":"action"}`))
	if err != nil || q.Status != nil {
		t.Fatalf("absent status must stay optional: %+v %v", q, err)
	}
}

func TestValidateYearQuery(t *testing.T) {
	for _, payload := range []string{`{"year":2002}`, `{"year":0}`, `{"year":-5}`, `{"year":2002.5}`} {
		q, err := ValidateYearQuery([]byte(payload))
		if err != nil {
			t.Fatalf("payload %s: %v", payload, err)
		}
		if q.Year == nil {
			t.Fatalf("payload %s: year not set", payload)
		}
	}

	for _, payload := range []string{`{"month":2002}`, `{"year":"2002"}`, `{"year":null}`, `{}`, `{"year":[2002]}`} {
		if _, err := ValidateYearQuery([]byte(payload)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("payload %s: want ErrInvalidInput, got %v", payload, err)
		}
	}
}
