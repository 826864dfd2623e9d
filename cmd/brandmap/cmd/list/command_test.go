package list

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/agentstation/brandmap/internal/appcontext"
	"github.com/agentstation/brandmap/pkg/brands"
)

func sampleBrands() []brands.Brand {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return []brands.Brand{
		{ID: bson.NewObjectID(), BrandName: "Acme", YearFounded: 1999, Headquarters: "Porto", NumberOfLocations: 3, CreatedAt: created, UpdatedAt: created},
		{ID: bson.NewObjectID(), BrandName: "Globex", YearFounded: 1989, Headquarters: "Springfield", NumberOfLocations: 1, CreatedAt: created, UpdatedAt: created},
	}
}

func newApp(format string) *appcontext.Mock {
	ops := &appcontext.OperationsMock{
		ListFunc: func(context.Context) ([]brands.Brand, int, error) {
			return sampleBrands(), 1, nil
		},
	}
	return &appcontext.Mock{
		OperationsFunc:   func() (appcontext.Operations, error) { return ops, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func TestCommand_Table(t *testing.T) {
	cmd := NewCommand(newApp("table"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	for _, want := range []string{"Acme", "Globex", "Porto"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCommand_SearchAndLimit(t *testing.T) {
	cmd := NewCommand(newApp("json"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--search", "spring"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if strings.Contains(out.String(), "Acme") || !strings.Contains(out.String(), "Globex") {
		t.Errorf("search not applied:\n%s", out.String())
	}

	cmd = NewCommand(newApp("json"))
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--limit", "1"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(out.String(), "Acme") || strings.Contains(out.String(), "Globex") {
		t.Errorf("limit not applied:\n%s", out.String())
	}
}

func TestCommand_InvalidOutputFormat(t *testing.T) {
	cmd := NewCommand(newApp("xml"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() accepted output format xml")
	}
}
