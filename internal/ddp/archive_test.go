package ddp

import (
	"errors"
	"io"
	"testing"

	"github.com/JonMunkholm/ddport/internal/ddp/ddptest"
)

func TestArchive_MemberByBaseName(t *testing.T) {
	p := ddptest.WriteZip(t,
		ddptest.File{Name: "TikTok_Data/Comments/Comments.txt", Body: "Date: a\nComment: b\n"},
		ddptest.File{Name: "Activity/Like List.txt", Body: "Date: c\nLink: d\n"},
	)

	a, err := OpenArchive(p)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer a.Close()

	if _, err := a.ReadMember("Comments.txt"); err != nil {
		t.Errorf("expected Comments.txt to be indexed by base name: %v", err)
	}
	if _, err := a.ReadMember("TikTok_Data/Comments/Comments.txt"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("full member path should not be indexed, got %v", err)
	}

	text, err := a.ReadText("Like List.txt")
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if text != "Date: c\nLink: d\n" {
		t.Errorf("ReadText() = %q", text)
	}

	names := a.Names()
	if len(names) != 2 || names[0] != "Comments.txt" || names[1] != "Like List.txt" {
		t.Errorf("Names() = %v", names)
	}
}

func TestArchive_FirstDuplicateWins(t *testing.T) {
	p := ddptest.WriteZip(t,
		ddptest.File{Name: "a/Post.txt", Body: "first"},
		ddptest.File{Name: "b/Post.txt", Body: "second"},
	)

	a, err := OpenArchive(p)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer a.Close()

	text, err := a.ReadText("Post.txt")
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if text != "first" {
		t.Errorf("ReadText() = %q, want %q", text, "first")
	}
}

func TestArchive_MissingMember(t *testing.T) {
	p := ddptest.WriteZip(t, ddptest.File{Name: "Post.txt", Body: "x"})

	a, err := OpenArchive(p)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer a.Close()

	if _, err := a.ReadMember("Comments.txt"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("ReadMember() error = %v, want ErrMemberNotFound", err)
	}
}

func TestArchive_InvalidUTF8(t *testing.T) {
	p := ddptest.WriteZip(t, ddptest.File{Name: "Comments.txt", Body: "Comment: caf\xe9"})

	a, err := OpenArchive(p)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer a.Close()

	if _, err := a.ReadText("Comments.txt"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("ReadText() error = %v, want ErrInvalidUTF8", err)
	}
}

func TestArchive_MemberTooLarge(t *testing.T) {
	old := MaxMemberSize
	MaxMemberSize = 4
	defer func() { MaxMemberSize = old }()

	p := ddptest.WriteZip(t, ddptest.File{Name: "Post.txt", Body: "0123456789"})

	a, err := OpenArchive(p)
	if err != nil {
		t.Fatalf("OpenArchive() error = %v", err)
	}
	defer a.Close()

	if _, err := a.ReadMember("Post.txt"); !errors.Is(err, ErrMemberTooLarge) {
		t.Errorf("ReadMember() error = %v, want ErrMemberTooLarge", err)
	}
}

func TestExtractMember(t *testing.T) {
	p := ddptest.WriteZip(t, ddptest.File{Name: "x/Follower.txt", Body: "Date: 1\n"})

	r, err := ExtractMember(p, "Follower.txt")
	if err != nil {
		t.Fatalf("ExtractMember() error = %v", err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "Date: 1\n" {
		t.Errorf("ExtractMember() = %q", data)
	}

	if _, err := ExtractMember(p, "Nope.txt"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("ExtractMember() error = %v, want ErrMemberNotFound", err)
	}
}

func TestOpenArchive_NotAZip(t *testing.T) {
	p := ddptest.WriteFile(t, "notes.zip", "definitely not a zip")
	if _, err := OpenArchive(p); err == nil {
		t.Error("expected error opening a non-zip file")
	}
}
