package odm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	build func(b *Builder)
}

func (f fakeElement) Build(b *Builder) { f.build(b) }

func TestRenderIndentation(t *testing.T) {
	e := fakeElement{build: func(b *Builder) {
		b.Start("Outer", Attr{"A", "1"})
		b.Start("Middle")
		b.Start("Inner")
		b.Data("text")
		b.End()
		b.End()
		b.End()
	}}

	expected := `<?xml version="1.0" encoding="utf-8" ?>
<Outer A="1">
  <Middle>
    <Inner>text</Inner>
  </Middle>
</Outer>`
	require.Equal(t, expected, Render(e))
}

func TestRenderSelfClosing(t *testing.T) {
	e := fakeElement{build: func(b *Builder) {
		b.Start("Empty", Attr{"Name", "value"})
		b.End()
	}}

	expected := `<?xml version="1.0" encoding="utf-8" ?>
<Empty Name="value" />`
	require.Equal(t, expected, Render(e))
}

func TestRenderEscaping(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *Builder)
		expected string
	}{
		{
			name: "attribute value escaped",
			build: func(b *Builder) {
				b.Start("E", Attr{"V", `a<b>&"c"`})
				b.End()
			},
			expected: `<E V="a&lt;b&gt;&amp;&quot;c&quot;" />`,
		},
		{
			name: "text content escaped",
			build: func(b *Builder) {
				b.Start("E")
				b.Data("1 < 2 & 3 > 2")
				b.End()
			},
			expected: `<E>1 &lt; 2 &amp; 3 &gt; 2</E>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(fakeElement{build: tt.build})
			require.Equal(t, xmlHeader+tt.expected, got)
		})
	}
}

func TestBuilderDataAccumulates(t *testing.T) {
	e := fakeElement{build: func(b *Builder) {
		b.Start("E")
		b.Data("one")
		b.Data(" two")
		b.End()
	}}

	require.Equal(t, xmlHeader+"<E>one two</E>", Render(e))
}
