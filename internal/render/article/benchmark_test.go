package article

import (
	"testing"

	"github.com/glabrego/cardfeed/internal/catalog"
)

func BenchmarkContentLinesWithOptions_HTMLArticle(b *testing.B) {
	a := catalog.Article{
		BodyFormat: catalog.FormatHTML,
		Body: `<article>
			<h1>Main Title</h1>
			<p>Intro with a <a href="https://example.com/link">reference</a>.</p>
			<ul><li>First point</li><li>Second point</li></ul>
			<ol><li>Step one</li><li>Step two</li></ol>
			<blockquote><p>Quoted claim</p></blockquote>
			<p><img src="https://example.com/image.jpg" alt="Cabin view"></p>
		</article>`,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ContentLinesWithOptions(a, 72, DefaultOptions)
	}
}
