package sourcemap

import (
	"testing"
)

func TestParseStackSyncFrames(t *testing.T) {
	text := `at handleClick (https://app.example/bundle.js:10:5)
at https://app.example/bundle.js:121:15
https://app.example/bundle.js:7:1`

	st := ParseStack(text)
	if st == nil {
		t.Fatal("no stack parsed")
	}
	if len(st.Sync) != 3 {
		t.Fatalf("got %d sync frames, want 3", len(st.Sync))
	}

	f := st.Sync[0]
	if f.Name != "handleClick" || f.URL != "https://app.example/bundle.js" {
		t.Errorf("frame 0 = %+v", f)
	}
	// 1-based stack text converts to 0-based internal positions.
	if f.Line != 9 || f.Column != 4 {
		t.Errorf("frame 0 position = %d:%d, want 9:4", f.Line, f.Column)
	}

	if st.Sync[1].Name != "" {
		t.Errorf("bare frame got name %q", st.Sync[1].Name)
	}
	if st.Sync[2].Line != 6 || st.Sync[2].Column != 0 {
		t.Errorf("frame 2 position = %d:%d", st.Sync[2].Line, st.Sync[2].Column)
	}
}

func TestParseStackAsyncFragments(t *testing.T) {
	text := `at tick (https://app.example/bundle.js:3:1)
--- setTimeout ------------------------
at schedule (https://app.example/bundle.js:44:1)
--- await ---
at run (https://app.example/bundle.js:99:9)`

	st := ParseStack(text)
	if st == nil {
		t.Fatal("no stack parsed")
	}
	if len(st.Sync) != 1 {
		t.Errorf("sync frames = %d, want 1", len(st.Sync))
	}
	if len(st.Async) != 2 {
		t.Fatalf("async fragments = %d, want 2", len(st.Async))
	}
	if st.Async[0].Description != "setTimeout" || len(st.Async[0].Frames) != 1 {
		t.Errorf("fragment 0 = %+v", st.Async[0])
	}
	if st.Async[1].Description != "await" || st.Async[1].Frames[0].Name != "run" {
		t.Errorf("fragment 1 = %+v", st.Async[1])
	}
}

func TestParseStackNativeAndJunk(t *testing.T) {
	text := `at map (native)
some unparseable noise
at top (https://app.example/bundle.js:1:1)`

	st := ParseStack(text)
	if st == nil {
		t.Fatal("no stack parsed")
	}
	if len(st.Sync) != 2 {
		t.Fatalf("got %d frames, want 2: %+v", len(st.Sync), st.Sync)
	}
	if st.Sync[0].Name != "map" || st.Sync[0].URL != "native" {
		t.Errorf("native frame = %+v", st.Sync[0])
	}
}

func TestParseStackEmpty(t *testing.T) {
	if st := ParseStack("\n  \n"); st != nil {
		t.Errorf("expected nil, got %+v", st)
	}
}

func TestParseStackAnonymousName(t *testing.T) {
	st := ParseStack("at <anonymous> (https://app.example/bundle.js:2:2)")
	if st == nil || len(st.Sync) != 1 {
		t.Fatal("no frame parsed")
	}
	if st.Sync[0].Name != "" {
		t.Errorf("anonymous frame kept name %q", st.Sync[0].Name)
	}
}
