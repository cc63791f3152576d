package pagination

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_ClampsBeyondRange(t *testing.T) {
	cfg := Config{PageSize: 50, PagesPerChunk: 4}
	res := Paginate(seq(137), cfg, Request{Page: "5"}, models.PageInfo{})

	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 3, res.CurrentPage)
	assert.Len(t, res.Items, 37)
	assert.Equal(t, 100, res.Items[0])
	assert.Nil(t, res.Next)
	require.NotNil(t, res.Previous)
	assert.Equal(t, Target{Page: 2}, *res.Previous)

	huge := Paginate(seq(137), cfg, Request{Page: "99999999999999999999"}, models.PageInfo{})
	assert.Equal(t, 3, huge.TotalPages)
	assert.Equal(t, 3, huge.CurrentPage)
	assert.Len(t, huge.Items, 37)

	negative := Paginate(seq(137), cfg, Request{Page: "-99999999999999999999"}, models.PageInfo{})
	assert.Equal(t, 1, negative.CurrentPage)
}

func TestPaginate_EmptyChunk(t *testing.T) {
	res := Paginate([]string{}, Config{PageSize: 10, PagesPerChunk: 2}, Request{}, models.PageInfo{})

	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.Next)
	assert.Nil(t, res.Previous)
	assert.Equal(t, []Target{{Page: 1}}, res.Pages)
}

func TestPaginate_EmptyChunkWithMoreData(t *testing.T) {
	info := models.PageInfo{HasNextPage: true, EndCursor: "end", HasPreviousPage: true, StartCursor: "start"}
	res := Paginate([]string{}, Config{PageSize: 10, PagesPerChunk: 3}, Request{}, info)

	require.NotNil(t, res.Next)
	assert.Equal(t, Target{Page: 1, Cursor: "end", Direction: DirectionNext}, *res.Next)
	require.NotNil(t, res.Previous)
	assert.Equal(t, Target{Page: 3, Cursor: "start", Direction: DirectionPrevious}, *res.Previous)
}

func TestPaginate_InvalidRequestedPage(t *testing.T) {
	cfg := Config{PageSize: 5, PagesPerChunk: 2}
	for _, raw := range []string{"", "0", "-3", "abc", "NaN", "1.5", " "} {
		t.Run(strconv.Quote(raw), func(t *testing.T) {
			res := Paginate(seq(12), cfg, Request{Page: raw}, models.PageInfo{})
			assert.Equal(t, 1, res.CurrentPage)
			assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Items)
		})
	}
}

func TestPaginate_PagesPartitionItems(t *testing.T) {
	for _, n := range []int{0, 1, 7, 8, 9, 31, 32, 33, 100} {
		for _, size := range []int{1, 3, 8, 50} {
			cfg := Config{PageSize: size, PagesPerChunk: 4}
			items := seq(n)

			first := Paginate(items, cfg, Request{}, models.PageInfo{})
			var all []int
			for p := 1; p <= first.TotalPages; p++ {
				res := Paginate(items, cfg, Request{Page: strconv.Itoa(p)}, models.PageInfo{})
				require.Equal(t, p, res.CurrentPage)
				if p < res.TotalPages {
					require.Len(t, res.Items, size, "n=%d size=%d page=%d", n, size, p)
				}
				all = append(all, res.Items...)
			}
			if diff := cmp.Diff(items, all, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("n=%d size=%d pages do not partition items (-want +got):\n%s", n, size, diff)
			}
		}
	}
}

func TestPaginate_CurrentPageAlwaysInRange(t *testing.T) {
	cfg := Config{PageSize: 4, PagesPerChunk: 2}
	for _, raw := range []string{"-100", "0", "1", "2", "3", "99999", "x"} {
		res := Paginate(seq(10), cfg, Request{Page: raw}, models.PageInfo{})
		assert.GreaterOrEqual(t, res.CurrentPage, 1)
		assert.LessOrEqual(t, res.CurrentPage, res.TotalPages)
	}
}

func TestPaginate_NextTargets(t *testing.T) {
	cfg := Config{PageSize: 10, PagesPerChunk: 3}
	info := models.PageInfo{HasNextPage: true, EndCursor: "c-end"}

	t.Run("inside chunk never carries cursor", func(t *testing.T) {
		res := Paginate(seq(30), cfg, Request{Page: "2"}, info)
		require.NotNil(t, res.Next)
		assert.Equal(t, Target{Page: 3}, *res.Next)
		assert.False(t, res.Next.CrossChunk())
	})

	t.Run("last page fetches next chunk", func(t *testing.T) {
		res := Paginate(seq(30), cfg, Request{Page: "3"}, info)
		require.NotNil(t, res.Next)
		assert.Equal(t, Target{Page: 1, Cursor: "c-end", Direction: DirectionNext}, *res.Next)
	})

	t.Run("last page without more data", func(t *testing.T) {
		res := Paginate(seq(30), cfg, Request{Page: "3"}, models.PageInfo{EndCursor: "c-end"})
		assert.Nil(t, res.Next)
	})

	t.Run("missing end cursor disables link", func(t *testing.T) {
		res := Paginate(seq(30), cfg, Request{Page: "3"}, models.PageInfo{HasNextPage: true})
		assert.Nil(t, res.Next)
	})
}

func TestPaginate_PreviousTargets(t *testing.T) {
	cfg := Config{PageSize: 10, PagesPerChunk: 3}
	info := models.PageInfo{HasPreviousPage: true, StartCursor: "c-start"}

	res := Paginate(seq(30), cfg, Request{Page: "2"}, info)
	require.NotNil(t, res.Previous)
	assert.Equal(t, Target{Page: 1}, *res.Previous)

	res = Paginate(seq(30), cfg, Request{Page: "1"}, info)
	require.NotNil(t, res.Previous)
	assert.Equal(t, Target{Page: 3, Cursor: "c-start", Direction: DirectionPrevious}, *res.Previous)

	res = Paginate(seq(30), cfg, Request{Page: "1"}, models.PageInfo{StartCursor: "c-start"})
	assert.Nil(t, res.Previous)
}

func TestPaginate_PageLinksAreIntraChunk(t *testing.T) {
	res := Paginate(seq(25), Config{PageSize: 10, PagesPerChunk: 3}, Request{}, models.PageInfo{HasNextPage: true, EndCursor: "e"})
	require.Len(t, res.Pages, 3)
	for i, p := range res.Pages {
		assert.Equal(t, i+1, p.Page)
		assert.Empty(t, p.Cursor)
		assert.Empty(t, p.Direction)
	}
}

func TestResult_LinkURLKeepsChunkCursor(t *testing.T) {
	req := Request{Page: "1", Cursor: "abc", Direction: DirectionNext}
	info := models.PageInfo{HasNextPage: true, EndCursor: "def", HasPreviousPage: true, StartCursor: "abc0"}
	res := Paginate(seq(20), Config{PageSize: 10, PagesPerChunk: 2}, req, info)

	next, err := url.Parse(res.LinkURL("/collections/all", *res.Next))
	require.NoError(t, err)
	assert.Equal(t, "/collections/all", next.Path)
	assert.Equal(t, "2", next.Query().Get("page"))
	assert.Equal(t, "abc", next.Query().Get("cursor"))
	assert.Equal(t, "next", next.Query().Get("direction"))

	prev, err := url.Parse(res.LinkURL("/collections/all", *res.Previous))
	require.NoError(t, err)
	assert.Equal(t, "2", prev.Query().Get("page"))
	assert.Equal(t, "abc0", prev.Query().Get("cursor"))
	assert.Equal(t, "previous", prev.Query().Get("direction"))
}

func TestTarget_QueryFirstChunk(t *testing.T) {
	q := Target{Page: 2}.Query()
	assert.Equal(t, "page=2", q.Encode())
}

func TestParseRequest(t *testing.T) {
	q := url.Values{"page": {"3"}, "cursor": {" xyz "}, "direction": {"PREVIOUS"}}
	req := ParseRequest(q)
	assert.Equal(t, Request{Page: "3", Cursor: "xyz", Direction: DirectionPrevious}, req)

	req = ParseRequest(url.Values{"direction": {"sideways"}})
	assert.Equal(t, Direction(""), req.Direction)
}

func TestChunkQuery(t *testing.T) {
	cfg := Config{PageSize: 8, PagesPerChunk: 4}

	v := ChunkQuery("", "", cfg)
	require.NotNil(t, v.First)
	assert.Equal(t, 32, *v.First)
	assert.Nil(t, v.Last)
	assert.Nil(t, v.After)
	assert.Nil(t, v.Before)

	v = ChunkQuery("cur", DirectionNext, cfg)
	require.NotNil(t, v.First)
	require.NotNil(t, v.After)
	assert.Equal(t, 32, *v.First)
	assert.Equal(t, "cur", *v.After)
	assert.Nil(t, v.Before)

	v = ChunkQuery("cur", DirectionPrevious, cfg)
	require.NotNil(t, v.Last)
	require.NotNil(t, v.Before)
	assert.Equal(t, 32, *v.Last)
	assert.Equal(t, "cur", *v.Before)
	assert.Nil(t, v.First)

	v = ChunkQuery("cur", "", cfg)
	require.NotNil(t, v.First)
	assert.Nil(t, v.After)
}

func TestConfig_Defaults(t *testing.T) {
	assert.Equal(t, DefaultPageSize*DefaultPagesPerChunk, Config{}.ChunkSize())
}
