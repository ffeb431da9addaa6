package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/glabrego/cardfeed/internal/catalog"
)

func ok(string) error   { return nil }
func fail(string) error { return errors.New("failed") }

func TestOpenURLCmd_Fallbacks(t *testing.T) {
	msg := OpenURLCmd("a1", "https://example.com", ok, ok)()
	success, isSuccess := msg.(LinkSuccessMsg)
	if !isSuccess || !success.Opened || success.ArticleID != "a1" {
		t.Fatalf("expected opened success, got %T %+v", msg, msg)
	}

	msg = OpenURLCmd("a1", "https://example.com", fail, ok)()
	success, isSuccess = msg.(LinkSuccessMsg)
	if !isSuccess || success.Opened {
		t.Fatalf("expected copy fallback success, got %T %+v", msg, msg)
	}

	msg = OpenURLCmd("a1", "https://example.com", fail, fail)()
	if _, isErr := msg.(LinkErrorMsg); !isErr {
		t.Fatalf("expected LinkErrorMsg, got %T", msg)
	}
}

func TestShareCmd(t *testing.T) {
	var copied string
	msg := ShareCmd("a1", "https://example.com", func(s string) error {
		copied = s
		return nil
	})()
	if _, isSuccess := msg.(LinkSuccessMsg); !isSuccess {
		t.Fatalf("expected LinkSuccessMsg, got %T", msg)
	}
	if copied != "https://example.com" {
		t.Fatalf("expected link passed to clipboard, got %q", copied)
	}

	msg = ShareCmd("a1", "https://example.com", fail)()
	if _, isErr := msg.(LinkErrorMsg); !isErr {
		t.Fatalf("expected LinkErrorMsg, got %T", msg)
	}
	msg = ShareCmd("a1", "https://example.com", nil)()
	if _, isErr := msg.(LinkErrorMsg); !isErr {
		t.Fatalf("expected LinkErrorMsg with no clipboard, got %T", msg)
	}
}

func TestClearStatusCmd(t *testing.T) {
	if cmd := ClearStatusCmd(3, 0); cmd == nil {
		t.Fatal("expected a tick command")
	}
}

func TestReloadCmd(t *testing.T) {
	var hadDeadline bool
	msg := ReloadCmd(func(ctx context.Context) ([]catalog.Article, error) {
		_, hadDeadline = ctx.Deadline()
		return []catalog.Article{{ID: "a"}}, nil
	})()
	success, isSuccess := msg.(ReloadSuccessMsg)
	if !isSuccess || len(success.Articles) != 1 {
		t.Fatalf("expected ReloadSuccessMsg with one article, got %T %+v", msg, msg)
	}
	if !hadDeadline {
		t.Fatal("expected reload context deadline to be set")
	}

	msg = ReloadCmd(func(context.Context) ([]catalog.Article, error) {
		return nil, errors.New("seed missing")
	})()
	if _, isErr := msg.(ReloadErrorMsg); !isErr {
		t.Fatalf("expected ReloadErrorMsg, got %T", msg)
	}
}
