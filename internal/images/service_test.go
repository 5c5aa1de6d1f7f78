package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestProcessHistoryFailureDoesNotFailPipeline(t *testing.T) {
	store := newFakeStore()
	recorder := &fakeRecorder{err: errors.New("db down")}
	svc := NewService(&fakeRemover{out: smallPNG(t)}, store, recorder)

	result, err := svc.Process(context.Background(), smallPNG(t), "cat.png", true)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.URL == "" {
		t.Error("expected a result URL despite the history failure")
	}
	if len(store.objects) != 1 {
		t.Error("expected exactly one stored object")
	}
}

// TestProcessPersistsMirroredBytes pins the persisting variant's contract:
// the stored object is the mirror of what the adapter returned, so clients
// display and download it as-is with no compensating flip of their own.
func TestProcessPersistsMirroredBytes(t *testing.T) {
	// Asymmetric 2x1 image: red on the left, blue on the right.
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	store := newFakeStore()
	svc := NewService(&fakeRemover{out: buf.Bytes()}, store, nil)

	if _, err := svc.Process(context.Background(), smallPNG(t), "cat.png", true); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(store.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(store.objects))
	}
	for _, data := range store.objects {
		stored, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode stored object: %v", err)
		}
		r, _, b, _ := stored.At(0, 0).RGBA()
		if r != 0 || b != 0xffff {
			t.Error("stored pixel (0,0) is not the mirrored blue pixel")
		}
		r, _, b, _ = stored.At(1, 0).RGBA()
		if r != 0xffff || b != 0 {
			t.Error("stored pixel (1,0) is not the mirrored red pixel")
		}
	}
}

func TestProcessGeneratesUniqueKeys(t *testing.T) {
	store := newFakeStore()
	svc := NewService(&fakeRemover{out: smallPNG(t)}, store, nil)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		result, err := svc.Process(context.Background(), smallPNG(t), "cat.png", true)
		if err != nil {
			t.Fatalf("Process #%d: %v", i, err)
		}
		if seen[result.URL] {
			t.Fatalf("duplicate result URL %q", result.URL)
		}
		seen[result.URL] = true
	}
	if len(store.objects) != 5 {
		t.Errorf("stored objects = %d, want 5", len(store.objects))
	}
}

func TestProcessStoreFailureLeavesNoOrphan(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.New("put refused")
	svc := NewService(&fakeRemover{out: smallPNG(t)}, store, nil)

	if _, err := svc.Process(context.Background(), smallPNG(t), "cat.png", true); err == nil {
		t.Fatal("expected store failure to abort the pipeline")
	}
	if len(store.objects) != 0 {
		t.Error("no object may exist after a failed pipeline")
	}
}

func TestProcessTransformFailureAborts(t *testing.T) {
	// Adapter "succeeds" but returns bytes the transform cannot decode.
	store := newFakeStore()
	svc := NewService(&fakeRemover{out: []byte("not an image")}, store, nil)

	if _, err := svc.Process(context.Background(), smallPNG(t), "cat.png", true); err == nil {
		t.Fatal("expected transform failure to abort the pipeline")
	}
	if len(store.objects) != 0 {
		t.Error("nothing may be persisted when the transform fails")
	}
}

func TestDeleteMapsURLToKey(t *testing.T) {
	store := newFakeStore()
	store.objects["k.png"] = []byte("data")
	svc := NewService(&fakeRemover{}, store, nil)

	if err := svc.Delete(context.Background(), store.PublicURL("k.png")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "k.png" {
		t.Errorf("deleted = %v, want [k.png]", store.deleted)
	}
}

