package htmlutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAnchors(t *testing.T) {
	doc, err := Document(`<div>
<a href="https://example.com/a?b=c">  Two
	Sum  </a>
<a href="%zz">broken</a>
<a>no href</a>
</div>`)
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	require.Equal(t, []Anchor{
		{Name: "Two Sum", Href: "https://example.com/a?b=c"},
		{Name: "no href", Href: ""},
	}, anchors)
}

func TestCleanText(t *testing.T) {
	doc, err := Document("<p> Amazon\u200b   Interview <b>Coding</b>\n Questions: </p>")
	require.NoError(t, err)
	require.Equal(t, "Amazon Interview Coding Questions:", CleanText(doc.Find("p").Nodes[0]))
}
