package domain

import "testing"

func TestSystemTagFromString(t *testing.T) {
	cases := map[string]SystemTag{
		"_snip_":     SystemTagSnippet,
		"_imported_": SystemTagText,
		"_shell_":    SystemTagShell,
		"_md_":       SystemTagMarkdown,
		"_env_":      SystemTagEnv,
	}
	for literal, want := range cases {
		got, ok := SystemTagFromString(literal)
		if !ok || got != want {
			t.Fatalf("SystemTagFromString(%q) = %v, %v; want %v, true", literal, got, ok, want)
		}
	}
	if _, ok := SystemTagFromString("_nope_"); ok {
		t.Fatal("expected unknown literal to report ok=false")
	}
}

func TestIsSystemTagLiteral(t *testing.T) {
	if !IsSystemTagLiteral("_custom_") {
		t.Fatal("expected _custom_ to match the _xxx_ shape")
	}
	if IsSystemTagLiteral("plain") {
		t.Fatal("expected plain to not match")
	}
	if IsSystemTagLiteral("_") {
		t.Fatal("expected single underscore to not match")
	}
}

func TestBookmarkWithSystemTags(t *testing.T) {
	snip, _ := NewTag("_snip_")
	regular, _ := NewTag("work")
	b := &Bookmark{Tags: []Tag{snip, regular}}

	if !b.HasSystemTag(SystemTagSnippet) {
		t.Fatal("expected snippet system tag present")
	}
	if b.HasSystemTag(SystemTagShell) {
		t.Fatal("did not expect shell system tag")
	}
	got := b.SystemTags()
	if len(got) != 1 || got[0] != SystemTagSnippet {
		t.Fatalf("got %v, want [SystemTagSnippet]", got)
	}
}

func TestBookmarkAddRemoveSystemTag(t *testing.T) {
	b := &Bookmark{}
	b.AddSystemTag(SystemTagShell)
	if !b.HasSystemTag(SystemTagShell) {
		t.Fatal("expected shell tag added")
	}
	b.RemoveSystemTag(SystemTagShell)
	if b.HasSystemTag(SystemTagShell) {
		t.Fatal("expected shell tag removed")
	}
}
