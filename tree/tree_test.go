package tree

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	n, err := Parse(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return n
}

func TestParse_TextAndTail(t *testing.T) {
	root := mustParse(t, `<?xml version="1.0"?><p>Hello <b>bold</b> world <i>it</i>!</p>`)

	if root.Tag != "p" || root.Text != "Hello " {
		t.Fatalf("root = %q/%q", root.Tag, root.Text)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	b, i := root.Children[0], root.Children[1]
	if b.Tag != "b" || b.Text != "bold" || b.Tail != " world " {
		t.Errorf("b = %+v", b)
	}
	if i.Tag != "i" || i.Text != "it" || i.Tail != "!" {
		t.Errorf("i = %+v", i)
	}
	if root.Tail != "" {
		t.Errorf("root tail = %q, want empty", root.Tail)
	}
}

func TestParse_AttributesInOrder(t *testing.T) {
	root := mustParse(t, `<a target="_blank" href="x?a=1&amp;b=2" class="c"/>`)

	want := []Attr{{"target", "_blank"}, {"href", "x?a=1&b=2"}, {"class", "c"}}
	if !reflect.DeepEqual(root.Attrs, want) {
		t.Errorf("Attrs = %v, want %v", root.Attrs, want)
	}
}

func TestParse_EntitiesDecoded(t *testing.T) {
	root := mustParse(t, `<p>a &lt;b&gt; &amp; c</p>`)
	if root.Text != "a <b> & c" {
		t.Errorf("Text = %q", root.Text)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, doc := range []string{"", "<?xml version=\"1.0\"?>", "just text"} {
		if _, err := Parse(strings.NewReader(doc), nil); err == nil {
			t.Errorf("Parse(%q) expected error", doc)
		}
	}
}

func TestParse_CharsetReader(t *testing.T) {
	called := ""
	cr := func(label string, input io.Reader) (io.Reader, error) {
		called = label
		return input, nil
	}
	root, err := Parse(strings.NewReader(`<?xml version="1.0" encoding="x-custom"?><doc/>`), cr)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if root.Tag != "doc" || called != "x-custom" {
		t.Errorf("root = %q, charset reader called with %q", root.Tag, called)
	}
}

func TestFromElement_NamespacedAttr(t *testing.T) {
	doc := etree.NewDocument()
	el := doc.CreateElement("a")
	el.CreateAttr("xlink:href", "#x")

	n := FromElement(el)
	if v, ok := n.Attr("xlink:href"); !ok || v != "#x" {
		t.Errorf("Attr(xlink:href) = %q, %v", v, ok)
	}
}

func TestNode_Attrs(t *testing.T) {
	n := &Node{Tag: "cell", Attrs: []Attr{{"nowrap", ""}, {"title", "T"}}}

	if !n.HasAttr("nowrap") {
		t.Error("HasAttr(nowrap) should be true for empty value")
	}
	if n.HasAttr("header") {
		t.Error("HasAttr(header) should be false")
	}
	if got := n.AttrDefault("template", "default"); got != "default" {
		t.Errorf("AttrDefault() = %q", got)
	}
	if got := n.AttrDefault("title", "x"); got != "T" {
		t.Errorf("AttrDefault() = %q", got)
	}

	if v, err := n.RequireAttr("title"); err != nil || v != "T" {
		t.Errorf("RequireAttr(title) = %q, %v", v, err)
	}
	_, err := n.RequireAttr("autolinks")
	var mae *MissingAttributeError
	if !errors.As(err, &mae) {
		t.Fatalf("RequireAttr() error = %v, want MissingAttributeError", err)
	}
	if mae.Tag != "cell" || mae.Attr != "autolinks" {
		t.Errorf("MissingAttributeError = %+v", mae)
	}
	if want := `element <cell> is missing required attribute "autolinks"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNode_Walk(t *testing.T) {
	root := mustParse(t, `<doc><chapter><section/><p/></chapter><chapter/></doc>`)

	var order []string
	if err := root.Walk(func(n *Node) error {
		order = append(order, n.Tag)
		return nil
	}); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []string{"doc", "chapter", "section", "p", "chapter"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Walk order = %v, want %v", order, want)
	}

	stop := errors.New("stop")
	visited := 0
	err := root.Walk(func(n *Node) error {
		visited++
		if n.Tag == "section" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 3 {
		t.Errorf("Walk() = %v after %d nodes, want stop after 3", err, visited)
	}
}

func TestNode_PlainText(t *testing.T) {
	root := mustParse(t, `<doc><code>a <b>b</b> c <i>d <b>e</b></i> f</code> tail</doc>`)

	code := root.Children[0]
	if got := code.PlainText(); got != "a b c d e f" {
		t.Errorf("PlainText() = %q", got)
	}
	if got := root.PlainText(); got != "a b c d e f tail" {
		t.Errorf("root PlainText() = %q", got)
	}
}

func TestNode_String(t *testing.T) {
	root := mustParse(t, `<doc title="D"><p>x</p> y</doc>`)

	want := strings.Join([]string{
		`<doc>`,
		`  @title="D"`,
		`  <p>`,
		`    Text: "x"`,
		`  Tail: " y"`,
		``,
	}, "\n")
	if got := root.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	var nilNode *Node
	if nilNode.String() != "<nil Node>" {
		t.Errorf("nil String() = %q", nilNode.String())
	}
}
