package localstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/pets"
)

type recordingLog struct {
	warnings []string
	errs     []error
}

func (l *recordingLog) Warn(msg string, fields ...zap.Field) {
	l.warnings = append(l.warnings, msg)
	for _, f := range fields {
		if err, ok := f.Interface.(error); ok {
			l.errs = append(l.errs, err)
		}
	}
}

func newTestStore(t *testing.T) (*Store, *FileKV, *recordingLog) {
	t.Helper()
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV returned error: %v", err)
	}
	log := &recordingLog{}
	return New(kv, log), kv, log
}

func seed(t *testing.T, kv *FileKV, list []pets.Pet) {
	t.Helper()
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := kv.Set(PetsKey, data); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestFileKV_GetMissingKey(t *testing.T) {
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileKV returned error: %v", err)
	}
	data, ok, err := kv.Get(PetsKey)
	if err != nil || ok || data != nil {
		t.Fatalf("Get = (%q, %v, %v), want missing", data, ok, err)
	}
}

func TestFileKV_SetReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV returned error: %v", err)
	}
	for _, value := range []string{"first", "second"} {
		if err := kv.Set("pets", []byte(value)); err != nil {
			t.Fatalf("Set(%q) returned error: %v", value, err)
		}
	}
	data, ok, err := kv.Get("pets")
	if err != nil || !ok || string(data) != "second" {
		t.Fatalf("Get = (%q, %v, %v), want second", data, ok, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "pets.json" {
		t.Fatalf("dir entries = %v, want only pets.json", entries)
	}
}

func TestFileKV_RejectsInvalidKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV returned error: %v", err)
	}
	for _, key := range []string{"", "../escape", "Pets", "a/b"} {
		if err := kv.Set(key, []byte("x")); err == nil {
			t.Fatalf("Set(%q) returned nil error, want invalid key", key)
		}
	}
}

func TestLoad_EmptyWhenMissing(t *testing.T) {
	store, _, _ := newTestStore(t)
	got := store.Load()
	if got == nil || len(got) != 0 {
		t.Fatalf("Load = %#v, want empty non-nil collection", got)
	}
}

func TestLoad_CorruptIsEmptyAndLogged(t *testing.T) {
	store, kv, log := newTestStore(t)
	if err := kv.Set(PetsKey, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := store.Load(); len(got) != 0 {
		t.Fatalf("Load = %#v, want empty collection", got)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("warnings = %v, want one", log.warnings)
	}
	if len(log.errs) != 1 || !errors.Is(log.errs[0], ErrCorrupt) {
		t.Fatalf("logged errors = %v, want ErrCorrupt", log.errs)
	}
}

func TestAppend_EmptyStoreStartsAtOne(t *testing.T) {
	store, _, _ := newTestStore(t)
	p, _, err := store.Append(pets.Input{Name: "Rex", Type: "dog", Price: "100"})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if p.ID != 1 || p.ImageURL != pets.DefaultImage(pets.TypeDog) {
		t.Fatalf("Append = %#v, want id=1 with default dog image", p)
	}
}

func TestAppend_AssignsMaxPlusOne(t *testing.T) {
	store, kv, _ := newTestStore(t)
	seed(t, kv, []pets.Pet{{ID: 2, Name: "A", Type: pets.TypeCat}, {ID: 9, Name: "B", Type: pets.TypeDog}, {ID: 4, Name: "C", Type: pets.TypeFish}})

	p, stored, err := store.Append(pets.Input{Name: "Rex", Type: "dog", Price: "100"})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if p.ID != 10 {
		t.Fatalf("ID = %d, want 10", p.ID)
	}

	if len(stored) != 4 || stored[3].ID != 10 {
		t.Fatalf("Append collection = %#v, want the four stored pets", stored)
	}

	loaded := store.Load()
	if len(loaded) != 4 {
		t.Fatalf("Load len = %d, want 4", len(loaded))
	}
	last := loaded[len(loaded)-1]
	if last.ID != 10 || last.Name != "Rex" || last.Type != pets.TypeDog {
		t.Fatalf("last = %#v, want appended Rex", last)
	}
	for _, prior := range loaded[:3] {
		if prior.ID >= last.ID {
			t.Fatalf("prior id %d not below new id %d", prior.ID, last.ID)
		}
	}
}

func TestAppend_OverCorruptStoreStartsOver(t *testing.T) {
	store, kv, _ := newTestStore(t)
	if err := kv.Set(PetsKey, []byte("[[[")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p, _, err := store.Append(pets.Input{Name: "Tom", Type: "cat", Price: "5"})
	if err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if p.ID != 1 {
		t.Fatalf("ID = %d, want 1", p.ID)
	}
	if got := store.Load(); len(got) != 1 {
		t.Fatalf("Load len = %d, want 1", len(got))
	}
}

func TestRemove_DropsID(t *testing.T) {
	store, kv, _ := newTestStore(t)
	seed(t, kv, pets.Samples())

	got, err := store.Remove(3)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Remove len = %d, want 4", len(got))
	}
	for _, p := range store.Load() {
		if p.ID == 3 {
			t.Fatalf("id 3 still stored")
		}
	}
}

func TestRemove_AbsentIDLeavesStoreUntouched(t *testing.T) {
	store, kv, _ := newTestStore(t)
	seed(t, kv, pets.Samples())
	before, _, err := kv.Get(PetsKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	got, err := store.Remove(42)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Remove len = %d, want 5", len(got))
	}
	after, _, err := kv.Get(PetsKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatalf("stored bytes changed:\nbefore %s\nafter  %s", before, after)
	}
}

type brokenKV struct{ err error }

func (b brokenKV) Get(string) ([]byte, bool, error) { return nil, false, b.err }
func (b brokenKV) Set(string, []byte) error        { return b.err }

func TestRemove_ReadFailureIsReturned(t *testing.T) {
	errDisk := errors.New("input/output error")
	store := New(brokenKV{err: errDisk}, nil)

	got, err := store.Remove(1)
	if !errors.Is(err, errDisk) {
		t.Fatalf("Remove error = %v, want %v", err, errDisk)
	}
	if got != nil {
		t.Fatalf("Remove = %#v, want nil on failure", got)
	}
}

func TestAppend_ReadFailureIsReturned(t *testing.T) {
	errDisk := errors.New("input/output error")
	store := New(brokenKV{err: errDisk}, nil)

	if _, _, err := store.Append(pets.Input{Name: "Rex", Type: "dog", Price: "100"}); !errors.Is(err, errDisk) {
		t.Fatalf("Append error = %v, want %v", err, errDisk)
	}
}

func TestRemove_CorruptStoreCountsAsEmpty(t *testing.T) {
	store, kv, log := newTestStore(t)
	if err := kv.Set(PetsKey, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Remove(1)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Remove = %#v, want empty", got)
	}
	if len(log.errs) != 1 || !errors.Is(log.errs[0], ErrCorrupt) {
		t.Fatalf("logged errors = %v, want ErrCorrupt", log.errs)
	}
}
