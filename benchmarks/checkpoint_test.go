package benchmarks

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/randalmurphal/resume/pkg/resume"
	"github.com/randalmurphal/resume/pkg/resume/codec"
	"github.com/randalmurphal/resume/pkg/resume/rng"
	"github.com/randalmurphal/resume/pkg/resume/state"
	"github.com/randalmurphal/resume/pkg/resume/store"
)

// BenchmarkMemoryStore_Save measures in-memory checkpoint save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	data := encodeLargeRecord(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ms.Save("bench.Save", data)
	}
}

// BenchmarkMemoryStore_Load measures in-memory checkpoint load.
func BenchmarkMemoryStore_Load(b *testing.B) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	data := encodeLargeRecord(b)
	_ = ms.Save("bench.Load", data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ms.Load("bench.Load")
	}
}

// BenchmarkFileStore_Save measures on-disk checkpoint save, including the
// atomic rename.
func BenchmarkFileStore_Save(b *testing.B) {
	fs := store.NewFileStore(b.TempDir())
	defer fs.Close()
	data := encodeLargeRecord(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fs.Save("bench.Save", data)
	}
}

// BenchmarkFileStore_Load measures on-disk checkpoint load.
func BenchmarkFileStore_Load(b *testing.B) {
	fs := store.NewFileStore(b.TempDir())
	defer fs.Close()
	data := encodeLargeRecord(b)
	_ = fs.Save("bench.Load", data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = fs.Load("bench.Load")
	}
}

// BenchmarkSQLiteStore_Save measures SQLite checkpoint save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	ss, cleanup := createSQLiteStore(b)
	defer cleanup()
	data := encodeLargeRecord(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ss.Save(identity(i%100), data)
	}
}

// BenchmarkSQLiteStore_Load measures SQLite checkpoint load.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	ss, cleanup := createSQLiteStore(b)
	defer cleanup()
	data := encodeLargeRecord(b)
	_ = ss.Save("bench.Load", data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ss.Load("bench.Load")
	}
}

// BenchmarkEncode measures record serialization overhead (JSON + gzip).
func BenchmarkEncode(b *testing.B) {
	rec := createLargeRecord()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = codec.Encode(rec)
	}
}

// BenchmarkDecode measures record deserialization overhead.
func BenchmarkDecode(b *testing.B) {
	data := encodeLargeRecord(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = codec.Decode(data)
	}
}

// BenchmarkCheckpoint_Save measures a full capture-encode-store cycle.
func BenchmarkCheckpoint_Save(b *testing.B) {
	vars := createLargeVars()
	ms := store.NewMemoryStore()
	defer ms.Close()

	chp, err := resume.New(vars,
		resume.WithName("bench.Checkpoint"),
		resume.WithStore(ms),
	)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = chp.Save(ctx)
	}
}

// BenchmarkCheckpoint_Restore measures a full load-decode-inject cycle.
func BenchmarkCheckpoint_Restore(b *testing.B) {
	vars := createLargeVars()
	ms := store.NewMemoryStore()
	defer ms.Close()

	chp, err := resume.New(vars,
		resume.WithName("bench.Checkpoint"),
		resume.WithStore(ms),
	)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	if err := chp.Save(ctx); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = chp.Restore(ctx)
	}
}

// BenchmarkCheckpoint_SyncThrottled measures the rate-limited fast path
// where the store is never touched.
func BenchmarkCheckpoint_SyncThrottled(b *testing.B) {
	vars := createLargeVars()
	ms := store.NewMemoryStore()
	defer ms.Close()

	chp, err := resume.New(vars,
		resume.WithName("bench.Checkpoint"),
		resume.WithStore(ms),
	)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	if _, err := chp.Sync(ctx); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = chp.Sync(ctx)
	}
}

// Helper functions

func createLargeVars() *state.Vars {
	vars := state.NewVars()
	vars.SetString("id", "bench-run")
	vars.SetInt("step", 42)
	vars.SetFloat("progress", 0.42)
	ints := make([]int64, 1000)
	floats := make([]float64, 1000)
	for i := range ints {
		ints[i] = int64(i * i)
		floats[i] = float64(i) / 3.0
	}
	vars.Set("squares", state.Ints(ints))
	vars.Set("samples", state.Floats(floats))
	vars.Set("labels", state.Strings([]string{"alpha", "beta", "gamma"}))
	vars.Set("meta", state.Map(map[string]state.Value{
		"nested": state.String("value"),
		"count":  state.Int(7),
	}))
	return vars
}

func createLargeRecord() *codec.Record {
	vars := createLargeVars()
	src := rng.New(1, 2)
	st, _ := src.State()
	return codec.NewRecord("bench.Record", vars.Capture(), st)
}

func encodeLargeRecord(b *testing.B) []byte {
	b.Helper()
	data, err := codec.Encode(createLargeRecord())
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func createSQLiteStore(b *testing.B) (*store.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	ss, err := store.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}

	return ss, func() {
		ss.Close()
		os.Remove(tmpFile.Name())
	}
}

func identity(i int) string {
	return fmt.Sprintf("bench.worker%02d", i)
}
