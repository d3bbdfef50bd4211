package phrases

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/storage"
)

func setupTestStore(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whosfree.json")
	store := storage.NewJSONStore(path, "default")
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	var out bytes.Buffer
	oldOut, oldNoColor := printer.Output, color.NoColor
	printer.Output, color.NoColor = &out, true
	t.Cleanup(func() { printer.Output, color.NoColor = oldOut, oldNoColor })

	return &cli.Context{Config: config.Config{Store: path, Tenant: "default"}, Store: store}, &out
}

func stubConfirm(t *testing.T, answer bool) *[]string {
	t.Helper()
	var asked []string
	old := confirmFunc
	confirmFunc = func(phrase string) (bool, error) {
		asked = append(asked, phrase)
		return answer, nil
	}
	t.Cleanup(func() { confirmFunc = old })
	return &asked
}

func TestPhraseAddCmd_Confirmed(t *testing.T) {
	ctx, out := setupTestStore(t)
	asked := stubConfirm(t, true)

	if err := (&PhraseAddCmd{Phrase: "  Who's free?  "}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if len(*asked) != 1 || (*asked)[0] != "Who's free?" {
		t.Errorf("confirmation asked for %v", *asked)
	}
	phrases, _ := ctx.Store.GetCatchphrases()
	if len(phrases) != 1 || phrases[0] != "Who's free?" {
		t.Errorf("phrases = %v", phrases)
	}
	if !strings.Contains(out.String(), "Phrase added") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPhraseAddCmd_Cancelled(t *testing.T) {
	ctx, _ := setupTestStore(t)
	stubConfirm(t, false)

	if err := (&PhraseAddCmd{Phrase: "Nope"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	phrases, _ := ctx.Store.GetCatchphrases()
	if len(phrases) != 0 {
		t.Errorf("cancelled add stored %v", phrases)
	}
}

func TestPhraseAddCmd_Empty(t *testing.T) {
	ctx, _ := setupTestStore(t)
	asked := stubConfirm(t, true)

	err := (&PhraseAddCmd{Phrase: "   "}).Run(ctx)
	if !errors.IsInputError(err) || err.Error() != "Type a phrase first" {
		t.Fatalf("expected 'Type a phrase first', got %v", err)
	}
	if len(*asked) != 0 {
		t.Error("confirmation shown for empty phrase")
	}
}

func TestPhraseAddCmd_Duplicate(t *testing.T) {
	ctx, out := setupTestStore(t)

	if err := (&PhraseAddCmd{Phrase: "Maths again", Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&PhraseAddCmd{Phrase: "MATHS AGAIN", Yes: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	phrases, _ := ctx.Store.GetCatchphrases()
	if len(phrases) != 1 {
		t.Errorf("phrases = %v", phrases)
	}
	if !strings.Contains(out.String(), "already a catchphrase") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPhraseListAndRandom(t *testing.T) {
	ctx, out := setupTestStore(t)

	if err := (&PhraseRandomCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No catchphrases yet.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if _, err := ctx.Store.AddCatchphrase("Only one"); err != nil {
		t.Fatal(err)
	}
	if err := (&PhraseRandomCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&PhraseListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "Only one") != 2 {
		t.Errorf("output = %q", out.String())
	}
}
