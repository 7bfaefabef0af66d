package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	ini "github.com/KimNorgaard/go-ini"
	"github.com/KimNorgaard/go-ini/prefs"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPreferencesTree(t *testing.T) {
	Convey("Given an unbacked preferences tree", t, func() {
		doc, err := ini.NewDocument()
		So(err, ShouldBeNil)
		p := prefs.Wrap(doc)

		Convey("the root node has the root path", func() {
			So(p.Root().Path(), ShouldEqual, "/")
		})

		Convey("nodes are created on demand", func() {
			n := p.Node("app", "window")
			So(n.Path(), ShouldEqual, "/app/window")
			So(p.Root().ChildrenNames(), ShouldResemble, []string{"app"})
		})

		Convey("values round-trip through a node", func() {
			n := p.Node("app")
			n.Put("theme", "dark")

			So(n.Get("theme", "light"), ShouldEqual, "dark")
			So(n.Get("missing", "light"), ShouldEqual, "light")
			So(n.Keys(), ShouldResemble, []string{"theme"})

			n.Remove("theme")
			So(n.Get("theme", "light"), ShouldEqual, "light")
		})

		Convey("subtrees can be removed", func() {
			p.Node("app", "window").Put("w", "800")
			p.Node("app").RemoveNode("window")
			So(p.Node("app").ChildrenNames(), ShouldBeEmpty)
		})

		Convey("the tree is backed by the document", func() {
			p.Node("app").Put("theme", "dark")
			v, ok := doc.Section("app").Get("theme")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "dark")
		})

		Convey("Flush without a file is a no-op", func() {
			p.Node("app").Put("k", "v")
			So(p.Flush(), ShouldBeNil)
		})
	})
}

func TestPreferencesPersistence(t *testing.T) {
	Convey("Given a file-backed preferences tree", t, func() {
		path := filepath.Join(t.TempDir(), "prefs.ini")

		Convey("opening a missing file yields an empty tree", func() {
			p, err := prefs.Open(path)
			So(err, ShouldBeNil)
			So(p.Root().Keys(), ShouldBeEmpty)

			Convey("and Flush with no changes writes nothing", func() {
				So(p.Flush(), ShouldBeNil)
				_, err := os.Stat(path)
				So(os.IsNotExist(err), ShouldBeTrue)
			})

			Convey("changes survive a flush and reopen", func() {
				p.Node("app").Put("theme", "dark")
				So(p.Flush(), ShouldBeNil)

				again, err := prefs.Open(path)
				So(err, ShouldBeNil)
				So(again.Node("app").Get("theme", ""), ShouldEqual, "dark")
			})
		})

		Convey("Sync reloads outside changes", func() {
			p, err := prefs.Open(path)
			So(err, ShouldBeNil)
			p.Node("app").Put("theme", "dark")
			So(p.Flush(), ShouldBeNil)

			So(os.WriteFile(path, []byte("[app]\ntheme = light\n"), 0o644), ShouldBeNil)
			So(p.Sync(), ShouldBeNil)
			So(p.Node("app").Get("theme", ""), ShouldEqual, "light")
		})

		Convey("opening a malformed file fails", func() {
			So(os.WriteFile(path, []byte("[broken\n"), 0o644), ShouldBeNil)
			_, err := prefs.Open(path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestWithDefaults(t *testing.T) {
	Convey("Given a store decorated with defaults", t, func() {
		doc, err := ini.NewDocument()
		So(err, ShouldBeNil)
		doc.Set("present", "own")

		st := prefs.WithDefaults(doc, map[string]string{
			"present": "shadowed",
			"extra":   "fallback",
		})

		Convey("own values win over defaults", func() {
			v, ok := st.Get("present")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "own")
		})

		Convey("misses fall through to the defaults", func() {
			v, ok := st.Get("extra")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "fallback")
			So(st.Has("extra"), ShouldBeTrue)
			So(st.Values("extra"), ShouldResemble, []string{"fallback"})
		})

		Convey("unknown keys still miss", func() {
			_, ok := st.Get("nothing")
			So(ok, ShouldBeFalse)
			So(st.Values("nothing"), ShouldBeNil)
		})

		Convey("Keys lists own keys first, then defaults", func() {
			So(st.Keys(), ShouldResemble, []string{"present", "extra"})
		})

		Convey("writes go to the wrapped store", func() {
			st.Set("extra", "written")
			v, ok := doc.Get("extra")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "written")
		})
	})
}
