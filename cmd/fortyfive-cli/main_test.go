package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/llehouerou/fortyfive/internal/app"
	"github.com/llehouerou/fortyfive/internal/app/mocks"
	"github.com/llehouerou/fortyfive/internal/discogs"
)

// execute runs the root command with args against catalog and returns what
// it printed.
func execute(t *testing.T, catalog app.Catalog, args ...string) (string, error) {
	t.Helper()
	open := func() (app.Catalog, error) {
		if catalog == nil {
			t.Fatal("catalog opened for invalid arguments")
		}
		return catalog, nil
	}
	var out bytes.Buffer
	root := newRootCmd(open)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func parse(t *testing.T, args ...string) (searchOptions, error) {
	t.Helper()
	cmd := cmdSearch(nil)
	require.NoError(t, cmd.ParseFlags(args))
	return parseSearch(cmd.Flags(), cmd.Flags().Args())
}

func kiss() discogs.Result {
	return discogs.Result{
		Type:  discogs.TypeRelease,
		ID:    1,
		Title: "Prince - Kiss",
		Release: &discogs.Release{
			ID:      1,
			Title:   "Kiss",
			Year:    1986,
			Artists: []discogs.Artist{{Name: "Prince"}},
			Formats: []discogs.Format{{Name: "Vinyl", Descriptions: []string{`7"`, "45 RPM", "Single"}}},
		},
	}
}

func TestParseSearch(t *testing.T) {
	opts, err := parse(t, "--type", "master", "-p", "3", "--limit", "2", "Prince", "Kiss")
	require.NoError(t, err)
	assert.Equal(t, discogs.TypeMaster, opts.typ)
	assert.Equal(t, 3, opts.page)
	assert.Equal(t, 2, opts.limit)
	assert.Equal(t, "Prince Kiss", opts.query)

	opts, err = parse(t, "--45", "Kiss")
	require.NoError(t, err)
	assert.True(t, opts.single)
	assert.Equal(t, 5, opts.limit)
	assert.Equal(t, 1, opts.page)
}

func TestParseSearch_Errors(t *testing.T) {
	tests := [][]string{
		{"--type", "label", "Kiss"},
		{"--page", "0", "Kiss"},
		{"--limit", "0", "Kiss"},
		{"--45", "--type", "artist", "Prince"},
		{" "},
	}
	for _, args := range tests {
		_, err := parse(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestRoot_ArgumentErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"play"}, `unknown command "play"`},
		{[]string{"search"}, "requires at least 1 arg"},
		{[]string{"search", "--bogus", "Kiss"}, "unknown flag: --bogus"},
		{[]string{"release"}, "accepts 1 arg(s), received 0"},
		{[]string{"release", "1", "2"}, "accepts 1 arg(s), received 2"},
		{[]string{"tags"}, "accepts 1 arg(s), received 0"},
		{[]string{"release", "abc"}, `invalid release id "abc"`},
		{[]string{"search", "--45", "-t", "artist", "Prince"}, "--45 only applies to releases"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestRoot_SearchHelp(t *testing.T) {
	out, err := execute(t, nil, "search", "--help")
	require.NoError(t, err)
	for _, flag := range []string{"--type", "--page", "--limit", "--45"} {
		assert.Contains(t, out, flag)
	}
}

func TestSearch_PrintsSingles(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	lp := kiss()
	lp.ID, lp.Release.ID = 2, 2
	lp.Release.Title = "Parade"
	lp.Release.Formats = []discogs.Format{{Name: "Vinyl", Descriptions: []string{"LP", "Album"}}}
	catalog.EXPECT().
		Search(gomock.Any(), "Prince Kiss", discogs.TypeRelease, 2).
		Return(&discogs.Page{Number: 2, Pages: 3, Items: 1234, Results: []discogs.Result{lp, kiss()}}, nil)

	out, err := execute(t, catalog, "search", "--45", "--page", "2", "Prince", "Kiss")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Page 2 of 3, 1,234 records\n"))
	assert.Contains(t, out, "Prince - Kiss (1986)")
	assert.NotContains(t, out, "Parade")
}

func TestSearch_NoResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().
		Search(gomock.Any(), "nothing", discogs.TypeArtist, 1).
		Return(&discogs.Page{Number: 1, Pages: 1}, nil)

	out, err := execute(t, catalog, "search", "-t", "artist", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().
		Search(gomock.Any(), "Kiss", discogs.TypeRelease, 1).
		Return(nil, errors.New("rate limited"))

	_, err := execute(t, catalog, "search", "Kiss")

	require.EqualError(t, err, `search "Kiss": rate limited`)
}

func TestRelease_Prints(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().GetRelease(gomock.Any(), 1).Return(kiss().Release, nil)

	out, err := execute(t, catalog, "release", "1")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Prince - Kiss (1986)\n"))
}

func TestWriteRelease(t *testing.T) {
	var out bytes.Buffer
	writeRelease(&out, &discogs.Release{
		ID:      1,
		Title:   "Kiss",
		Year:    1986,
		Artists: []discogs.Artist{{Name: "Prince"}},
		Tracklist: []discogs.Track{
			{Position: "A", Title: "Kiss", Duration: "3:45"},
			{Position: "B", Title: "Love Or Money", Duration: "6:15"},
		},
	})

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Prince - Kiss (1986)\n"))
	assert.Contains(t, got, "Genres:  N/A")
	assert.Contains(t, got, "Total:   0:10:00")
	assert.Contains(t, got, "Love Or Money")
}
