package resultdesk

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(t *testing.T, d *testDesk)
		phone   string
		seat    string
		wantErr error
		want    string
	}{
		{
			name:    "Given neither phone nor seat Then it is incomplete",
			seed:    func(*testing.T, *testDesk) {},
			phone:   " - ",
			wantErr: errs.ErrIncompleteSubmission,
		},
		{
			name:    "Given no matching request Then not found",
			seed:    func(*testing.T, *testDesk) {},
			seat:    "S9",
			wantErr: errs.ErrNotFound,
		},
		{
			name: "Given an unpaid request with a loaded result Then payment is required",
			seed: func(t *testing.T, d *testDesk) {
				seedRequest(t, d, "S1", "201001112222", false, time.Now())
				seedResult(t, d, "S1", datatypes.JSONMap{"grade": "A"})
			},
			seat:    "S1",
			wantErr: errs.ErrPaymentRequired,
		},
		{
			name: "Given a paid request without a loaded result Then the result is unavailable",
			seed: func(t *testing.T, d *testDesk) {
				seedRequest(t, d, "S1", "201001112222", true, time.Now())
			},
			seat:    "S1",
			wantErr: errs.ErrResultUnavailable,
		},
		{
			name: "Given a paid request without seat Then the result is unavailable",
			seed: func(t *testing.T, d *testDesk) {
				seedRequest(t, d, "", "201001112222", true, time.Now())
			},
			phone:   "+20 100 111 2222",
			wantErr: errs.ErrResultUnavailable,
		},
		{
			name: "Given a paid request found by formatted phone Then the result is joined",
			seed: func(t *testing.T, d *testDesk) {
				seedRequest(t, d, "S1", "201001112222", true, time.Now())
				seedResult(t, d, "S1", datatypes.JSONMap{"grade": "A"})
			},
			phone: "+20 100 111 2222",
			want:  "A",
		},
		{
			name: "Given both phone and seat Then the seat wins",
			seed: func(t *testing.T, d *testDesk) {
				seedRequest(t, d, "S1", "111", false, time.Now())
				seedRequest(t, d, "S2", "222", true, time.Now())
				seedResult(t, d, "S2", datatypes.JSONMap{"grade": "B"})
			},
			phone: "111",
			seat:  "S2",
			want:  "B",
		},
		{
			name: "Given duplicate requests Then the oldest decides",
			seed: func(t *testing.T, d *testDesk) {
				now := time.Now()
				seedRequest(t, d, "S1", "111", true, now)
				seedRequest(t, d, "S1", "111", false, now.Add(-time.Hour))
				seedResult(t, d, "S1", datatypes.JSONMap{"grade": "A"})
			},
			seat:    "S1",
			wantErr: errs.ErrPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesk()
			tt.seed(t, d)
			l := NewLookupService(d.repo, logger.NewNop())

			doc, err := l.Lookup(context.Background(), tt.phone, tt.seat)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc["grade"] != tt.want {
				t.Errorf("grade = %v, want %v", doc["grade"], tt.want)
			}
		})
	}
}

func TestLookup_OpenedRequestNeverQueriesResults(t *testing.T) {
	d := newTestDesk()
	seedRequest(t, d, "S1", "201001112222", false, time.Now())
	seedResult(t, d, "S1", datatypes.JSONMap{"grade": "A"})
	if err := d.service.OpenResult(context.Background(), "S1"); err != nil {
		t.Fatalf("OpenResult: %v", err)
	}
	queriesAfterOpen := d.repo.resultQueries

	l := NewLookupService(d.repo, logger.NewNop())
	doc, err := l.Lookup(context.Background(), "", "S1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if doc["grade"] != "A" || doc["seatNumber"] != "S1" {
		t.Errorf("doc = %v", doc)
	}
	if d.repo.resultQueries != queriesAfterOpen {
		t.Error("lookup of an opened request must not query results")
	}
}

func TestLookup_JoinsOnceThenServesEmbeddedCopy(t *testing.T) {
	d := newTestDesk()
	req := seedRequest(t, d, "S1", "111", true, time.Now())
	seedResult(t, d, "S1", datatypes.JSONMap{"grade": "A"})
	l := NewLookupService(d.repo, logger.NewNop())

	if _, err := l.Lookup(context.Background(), "", "S1"); err != nil {
		t.Fatalf("first Lookup: %v", err)
	}
	if d.repo.resultQueries != 1 {
		t.Fatalf("result queries = %d, want 1", d.repo.resultQueries)
	}
	if !d.repo.request(req.ID).HasResult() {
		t.Fatal("result should be written back onto the request")
	}

	doc, err := l.Lookup(context.Background(), "111", "")
	if err != nil {
		t.Fatalf("second Lookup: %v", err)
	}
	if doc["grade"] != "A" {
		t.Errorf("doc = %v", doc)
	}
	if d.repo.resultQueries != 1 {
		t.Errorf("result queries = %d after second lookup, want still 1", d.repo.resultQueries)
	}
}
