package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeanim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	turns := NewTurnRepository(db)

	id, err := sessions.Create("play", "dev")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recorded := []cubeanim.Turn{
		{Seq: 1, Face: cubeanim.FaceFront, Direction: cubeanim.Clockwise, At: at},
		{Seq: 2, Face: cubeanim.FaceUp, Direction: cubeanim.CounterClockwise, At: at.Add(time.Second)},
	}
	if _, err := turns.Create(id, 0, recorded[0]); err != nil {
		t.Fatalf("Create turn: %v", err)
	}
	if err := turns.CreateBatch(id, 0, recorded[1:]); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if err := sessions.End(id, false); err != nil {
		t.Fatalf("End: %v", err)
	}

	s, err := sessions.Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get: %v, %v", s, err)
	}
	if s.Source != "play" || s.EndedAt == nil || s.Solved == nil || *s.Solved {
		t.Errorf("session = %+v", s)
	}
	if s.AppVersion == nil || *s.AppVersion != "dev" {
		t.Errorf("app version = %v", s.AppVersion)
	}
	if s.TurnCount != 2 {
		t.Errorf("turn count = %d, want 2", s.TurnCount)
	}

	records, err := turns.GetBySession(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d turns, want 2", len(records))
	}
	if records[1].Notation != "U'" || records[1].Face != "up" {
		t.Errorf("second turn = %+v", records[1])
	}
	back, err := records[1].Turn()
	if err != nil {
		t.Fatal(err)
	}
	if back.Face != cubeanim.FaceUp || back.Direction != cubeanim.CounterClockwise || !back.At.Equal(recorded[1].At) {
		t.Errorf("Turn() = %+v", back)
	}
}

func TestDuplicateSeqRejected(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("serve", "")
	if err != nil {
		t.Fatal(err)
	}
	turns := NewTurnRepository(db)
	turn := cubeanim.Turn{Seq: 1, Face: cubeanim.FaceBack, Direction: cubeanim.Clockwise, At: time.Now()}
	if _, err := turns.Create(id, 0, turn); err != nil {
		t.Fatal(err)
	}
	if _, err := turns.Create(id, 0, turn); err == nil {
		t.Error("duplicate seq should fail")
	}

	// A failing batch rolls back entirely.
	batch := []cubeanim.Turn{
		{Seq: 2, Face: cubeanim.FaceLeft, Direction: cubeanim.Clockwise, At: time.Now()},
		turn,
	}
	if err := turns.CreateBatch(id, 0, batch); err == nil {
		t.Error("batch with duplicate seq should fail")
	}
	if n, _ := turns.Count(id); n != 1 {
		t.Errorf("count after rollback = %d, want 1", n)
	}
}

func TestTurnRequiresSession(t *testing.T) {
	db := openTestDB(t)
	turn := cubeanim.Turn{Seq: 1, Face: cubeanim.FaceFront, Direction: cubeanim.Clockwise, At: time.Now()}
	if _, err := NewTurnRepository(db).Create("missing", 0, turn); err == nil {
		t.Error("turn for unknown session should violate the foreign key")
	}
}

func TestListAndDelete(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := sessions.Create("play", "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	list, err := sessions.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].SessionID != ids[2] {
		t.Errorf("List(2) = %+v", list)
	}

	if err := sessions.Delete(ids[0]); err != nil {
		t.Fatal(err)
	}
	if s, err := sessions.Get(ids[0]); err != nil || s != nil {
		t.Errorf("Get after delete = %v, %v", s, err)
	}
}

func TestResetEpochs(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	turns := NewTurnRepository(db)

	id, err := sessions.Create("play", "")
	if err != nil {
		t.Fatal(err)
	}
	turn := cubeanim.Turn{Seq: 1, Face: cubeanim.FaceRight, Direction: cubeanim.Clockwise, At: time.Now()}
	if _, err := turns.Create(id, 0, turn); err != nil {
		t.Fatal(err)
	}

	epoch, err := sessions.MarkReset(id)
	if err != nil || epoch != 1 {
		t.Fatalf("MarkReset = %d, %v", epoch, err)
	}

	// Numbering restarts after a reset.
	turn.Face = cubeanim.FaceLeft
	if _, err := turns.Create(id, epoch, turn); err != nil {
		t.Fatalf("seq 1 in a new epoch: %v", err)
	}

	all, _ := turns.GetBySession(id)
	current, _ := turns.GetByEpoch(id, epoch)
	if len(all) != 2 || len(current) != 1 || current[0].Face != "left" {
		t.Errorf("all = %+v, current = %+v", all, current)
	}
	if s, _ := sessions.Get(id); s.Resets != 1 {
		t.Errorf("resets = %d", s.Resets)
	}
}

func TestFindByPrefix(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	id, err := sessions.Create("play", "")
	if err != nil {
		t.Fatal(err)
	}

	s, err := sessions.Find(id[:8])
	if err != nil || s == nil || s.SessionID != id {
		t.Fatalf("Find(%q) = %v, %v", id[:8], s, err)
	}
	if s, err := sessions.Find("zzzz"); err != nil || s != nil {
		t.Errorf("Find(no match) = %v, %v", s, err)
	}

	if _, err := sessions.Create("play", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := sessions.Find(""); err != ErrAmbiguousPrefix {
		t.Errorf("Find(\"\") error = %v, want ErrAmbiguousPrefix", err)
	}

	last, err := sessions.GetLast()
	if err != nil || last == nil || last.SessionID == id {
		t.Errorf("GetLast = %v, %v", last, err)
	}
}

func TestRecordConversionRejectsUnknownFace(t *testing.T) {
	if _, err := (TurnRecord{Face: "middle", Direction: 1}).Turn(); err == nil {
		t.Error("expected error for unknown face")
	}
	if _, err := (TurnRecord{Face: "front", Direction: 7}).Turn(); err == nil {
		t.Error("expected error for unknown direction")
	}
}
