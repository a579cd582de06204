package app

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/tags"
	"github.com/llehouerou/fortyfive/internal/ui/testutil"
)

func fullRelease() *discogs.Release {
	r := *single(1, "Kiss").Release
	r.Styles = []string{"Funk"}
	r.Tracklist = []discogs.Track{
		{Position: "A", Title: "Kiss", Duration: "3:45"},
		{Position: "B", Title: "Love Or Money", Duration: "6:15"},
	}
	return &r
}

// openDetails searches, checks the first row and selects it.
func (h *harness) openDetails(release *discogs.Release, err error) {
	h.t.Helper()
	h.catalog.EXPECT().
		Search(gomock.Any(), "Prince - Kiss", discogs.TypeRelease, 1).
		Return(catalogPage(1, single(1, "Kiss"), single(3, "Girls & Boys")), nil)
	h.catalog.EXPECT().GetRelease(gomock.Any(), 1).Return(release, err)

	h.search("Prince", "Kiss")
	h.keys(" ")
	h.click(h.m.results.sel)
	h.wantState(StateDetails)
}

func TestDetails_ShowsReleaseAndTotal(t *testing.T) {
	h := newHarness(t, Options{})
	h.openDetails(fullRelease(), nil)

	v := h.view()
	for _, want := range []string{
		"Prince - Kiss (1986)",
		"Paisley Park",
		"Vinyl, 7\", 45 RPM, Single",
		"Love Or Money",
		"6:15",
		"0:10:00",
		"Funk",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if line := testutil.FindLine(v, "Genres:"); !strings.Contains(line, "N/A") {
		t.Errorf("genres line = %q, want N/A", line)
	}
	if h.m.details.apply != nil {
		t.Error("Apply Tags shown without a file")
	}
}

func TestDetails_LoadErrorKeepsSummary(t *testing.T) {
	h := newHarness(t, Options{})
	h.openDetails(nil, errors.New("timeout"))

	h.wantState(StateDetails)
	v := h.view()
	if !strings.Contains(v, "Failed to load release") {
		t.Error("expected the load error")
	}
	if !strings.Contains(v, "Paisley Park") {
		t.Error("summary fields should stay visible")
	}
	if !strings.Contains(v, "No tracklist.") {
		t.Error("expected the empty tracklist note")
	}
}

func TestDetails_BackKeepsCheck(t *testing.T) {
	h := newHarness(t, Options{})
	h.openDetails(fullRelease(), nil)

	h.keys("esc")

	h.wantState(StateResults)
	i, ok := h.m.results.boxes.Selected()
	if !ok || i != 0 {
		t.Errorf("selected = %d, %v; want 0, true", i, ok)
	}
	if h.m.Page() != 1 {
		t.Errorf("page = %d, want 1", h.m.Page())
	}
}

func TestDetails_CoverFailureShowsPlaceholder(t *testing.T) {
	h := newHarness(t, Options{})
	r := fullRelease()
	r.Images = []discogs.Image{{Type: "primary", URI: "https://img.example/kiss.jpg"}}
	h.images.EXPECT().
		Fetch(gomock.Any(), "https://img.example/kiss.jpg").
		Return(nil, errors.New("404"))

	h.openDetails(r, nil)

	d := h.m.details
	if d.coverLoading {
		t.Error("cover still loading")
	}
	if d.cover != nil {
		t.Error("failed cover kept data")
	}
	if d.coverView == "" {
		t.Error("expected a placeholder")
	}
}

func newTaggingHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, Options{FilePath: "/music/kiss.mp3"})
	h.store.EXPECT().
		Read("/music/kiss.mp3").
		Return(&tags.Tag{Path: "/music/kiss.mp3", Artist: "Prince", Title: "Kiss", TrackNumber: 1}, nil).
		AnyTimes()
	h.settle(h.m.Init())
	return h
}

// openDetailsTagged submits the prefilled form and selects the first row.
func (h *harness) openDetailsTagged() {
	h.t.Helper()
	h.catalog.EXPECT().
		Search(gomock.Any(), "Prince - Kiss", discogs.TypeRelease, 1).
		Return(catalogPage(1, single(1, "Kiss")), nil)
	h.catalog.EXPECT().GetRelease(gomock.Any(), 1).Return(fullRelease(), nil)

	h.keys("enter", " ")
	h.click(h.m.results.sel)
	h.wantState(StateDetails)
	if h.m.details.apply == nil {
		h.t.Fatal("Apply Tags missing with a file")
	}
}

func TestTagging_PrefillsForm(t *testing.T) {
	h := newTaggingHarness(t)

	if got := h.m.form.query(); got != "Prince - Kiss" {
		t.Errorf("query = %q, want %q", got, "Prince - Kiss")
	}
	if !strings.Contains(h.view(), "Tagging kiss.mp3") {
		t.Error("expected the tagging status")
	}
}

func TestTagging_ReadErrorShowsStatus(t *testing.T) {
	h := newHarness(t, Options{FilePath: "/music/broken.mp3"})
	h.store.EXPECT().Read("/music/broken.mp3").Return(nil, errors.New("bad header"))

	h.settle(h.m.Init())

	h.wantState(StateInput)
	if !strings.Contains(h.view(), "Failed to read file tags 'broken.mp3': bad header") {
		t.Error("expected the read error")
	}
	if h.m.form.artist.Value() != "" {
		t.Error("form prefilled from a failed read")
	}
}

func TestTagging_ApplyWritesRelease(t *testing.T) {
	h := newTaggingHarness(t)
	var written *tags.Tag
	h.store.EXPECT().
		Write("/music/kiss.mp3", gomock.Any()).
		DoAndReturn(func(_ string, tag *tags.Tag) error {
			written = tag
			return nil
		})

	h.openDetailsTagged()

	h.click(h.m.details.apply)
	if !h.m.confirm.Active() {
		t.Fatal("expected the confirmation")
	}
	if !strings.Contains(h.view(), "Apply tags?") {
		t.Error("confirmation not drawn")
	}
	h.keys("y")

	if written == nil {
		t.Fatal("tags not written")
	}
	if written.Album != "Kiss" || written.Artist != "Prince" || written.Media != `7" Vinyl` {
		t.Errorf("written = %+v", written)
	}
	if written.TrackNumber != 1 {
		t.Errorf("track number = %d, want kept", written.TrackNumber)
	}
	if !strings.Contains(h.view(), "Tags written to kiss.mp3") {
		t.Error("expected the success status")
	}
}

func TestTagging_ConfirmDefaultsToNo(t *testing.T) {
	h := newTaggingHarness(t)
	h.store.EXPECT().Write(gomock.Any(), gomock.Any()).Times(0)

	h.openDetailsTagged()
	h.click(h.m.details.apply)
	h.keys("enter")

	if h.m.confirm.Active() {
		t.Error("confirmation still open")
	}
	h.wantState(StateDetails)
}

func TestTagging_WriteErrorShowsStatus(t *testing.T) {
	h := newTaggingHarness(t)
	h.store.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))

	h.openDetailsTagged()
	h.click(h.m.details.apply)
	h.keys("y")

	if !strings.Contains(h.view(), "Failed to write file tags 'kiss.mp3': read-only") {
		t.Error("expected the write error")
	}
}

func TestTagging_WriteResultSurvivesBack(t *testing.T) {
	h := newTaggingHarness(t)
	h.store.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))

	h.openDetailsTagged()
	h.click(h.m.details.apply)

	// Answer without running the write so it lands after esc.
	_, answer := h.m.Update(testutil.Key("y"))
	_, write := h.m.Update(answer())
	if write == nil {
		t.Fatal("expected the write command")
	}
	h.keys("esc")
	h.wantState(StateResults)

	h.settle(write)

	h.wantState(StateResults)
	if !strings.Contains(h.view(), "Failed to write file tags 'kiss.mp3': read-only") {
		t.Error("expected the write error after going back")
	}
}
