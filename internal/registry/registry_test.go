package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkArgs(d *Declarer) *Declarer {
	return d.String("network_type", "Network architecture", Choices("lstm", "mlp")).
		Float("lr", "Learning rate", Default(0.5))
}

func dataArgs(d *Declarer) *Declarer {
	return d.Path("path_train", "Training samples").
		Path("path_val", "Validation samples")
}

func TestRegister(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("data", dataArgs))

	assert.Error(t, r.Register("data", dataArgs), "re-registering a group should fail")
	assert.Error(t, r.Register("", dataArgs))
	assert.Error(t, r.Register("  ", dataArgs))
	assert.Error(t, r.Register("network", nil))
}

func TestNames_ReservedGroupsFirst(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("network", networkArgs))
	require.NoError(t, r.Register(Preliminary, func(d *Declarer) *Declarer {
		return d.Path("config_file", "Config file", Default("config.yaml"))
	}))
	require.NoError(t, r.Register("data", dataArgs))
	require.NoError(t, r.Register(Main, func(d *Declarer) *Declarer {
		return d.Path("path_out", "Output folder", Default("./results/"))
	}))

	assert.Equal(t, []string{Main, Preliminary, "network", "data"}, r.Names())
}

func TestGroups_Specs(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("network", networkArgs))

	groups, err := r.Groups()
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "network", g.Name)
	assert.False(t, g.Flattened())
	require.Len(t, g.Specs, 2)

	typ := g.Specs[0]
	assert.Equal(t, "network_type", typ.Name())
	assert.Equal(t, KindString, typ.Kind())
	assert.Equal(t, "network", typ.Group())
	_, ok := typ.Default()
	assert.False(t, ok)
	assert.Equal(t, []string{"lstm", "mlp"}, typ.Choices())
	assert.True(t, typ.Allows("mlp"))
	assert.False(t, typ.Allows("cnn"))

	lr, ok := g.Lookup("lr")
	require.True(t, ok)
	def, ok := lr.Default()
	require.True(t, ok)
	assert.Equal(t, 0.5, def)

	_, ok = g.Lookup("missing")
	assert.False(t, ok)
}

func TestGroups_FreshSpecsPerCall(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("network", networkArgs))

	first, err := r.Groups()
	require.NoError(t, err)
	second, err := r.Groups()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	choices := first[0].Specs[0].Choices()
	choices[0] = "changed"
	assert.Equal(t, []string{"lstm", "mlp"}, second[0].Specs[0].Choices())
	assert.Equal(t, []string{"lstm", "mlp"}, first[0].Specs[0].Choices())
}

func TestGroups_DefaultNormalization(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("train", func(d *Declarer) *Declarer {
		return d.Float("lr", "", Default(1)).
			Int("epochs", "", Default(10.0)).
			Path("out", "", Default("runs")).
			Bool("resume", "", Default(false))
	}))

	groups, err := r.Groups()
	require.NoError(t, err)

	want := map[string]any{"lr": 1.0, "epochs": 10, "out": Path("runs"), "resume": false}
	for _, s := range groups[0].Specs {
		def, ok := s.Default()
		require.True(t, ok, s.Name())
		assert.Equal(t, want[s.Name()], def, s.Name())
	}
}

func TestGroups_DuplicateInFlattenedNamespace(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Main, func(d *Declarer) *Declarer {
		return d.Path("config_file", "", Default("a.yaml"))
	}))
	require.NoError(t, r.Register(Preliminary, func(d *Declarer) *Declarer {
		return d.Path("config_file", "", Default("b.yaml"))
	}))

	_, err := r.Groups()
	var dup *DuplicateFlagError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "config_file", dup.Flag)
	assert.Equal(t, []string{Main, Preliminary}, dup.Groups)
}

func TestGroups_DuplicateAcrossGroups(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("data", dataArgs))
	require.NoError(t, r.Register("eval", func(d *Declarer) *Declarer {
		return d.Path("path_val", "")
	}))

	_, err := r.Groups()
	var dup *DuplicateFlagError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "path_val", dup.Flag)
	assert.Contains(t, err.Error(), "data and eval")
}

func TestGroups_DuplicateWithinGroup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("data", func(d *Declarer) *Declarer {
		return d.Path("path_train", "").Path("path_train", "")
	}))

	_, err := r.Groups()
	var dup *DuplicateFlagError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, err.Error(), `declared twice in group "data"`)
}

func TestGroups_FlagCollidesWithGroupName(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Main, func(d *Declarer) *Declarer {
		return d.String("data", "")
	}))
	require.NoError(t, r.Register("data", dataArgs))

	_, err := r.Groups()
	var dup *DuplicateFlagError
	require.ErrorAs(t, err, &dup)
	assert.True(t, dup.GroupName)
}

func TestGroups_InvalidDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		declare DeclareFunc
	}{
		{"empty name", func(d *Declarer) *Declarer { return d.String("", "") }},
		{"reserved help", func(d *Declarer) *Declarer { return d.Bool("help", "") }},
		{"leading dash", func(d *Declarer) *Declarer { return d.String("-x", "") }},
		{"equals sign", func(d *Declarer) *Declarer { return d.String("a=b", "") }},
		{"wrong default type", func(d *Declarer) *Declarer { return d.Float("lr", "", Default("fast")) }},
		{"fractional int default", func(d *Declarer) *Declarer { return d.Int("n", "", Default(1.5)) }},
		{"default outside choices", func(d *Declarer) *Declarer {
			return d.String("network_type", "", Choices("lstm", "mlp"), Default("cnn"))
		}},
		{"unparseable choice", func(d *Declarer) *Declarer { return d.Int("n", "", Choices("one", "two")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			require.NoError(t, r.Register("g", tt.declare))
			_, err := r.Groups()
			var decl *DeclarationError
			require.ErrorAs(t, err, &decl)
			assert.Equal(t, "g", decl.Group)
		})
	}
}

func TestGroups_JoinsAllErrors(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("g", func(d *Declarer) *Declarer {
		return d.String("", "").Float("lr", "", Default(true))
	}))

	_, err := r.Groups()
	require.Error(t, err)
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}

func TestNormalizeFormatParse(t *testing.T) {
	tests := []struct {
		kind Kind
		in   any
		want any
		text string
	}{
		{KindString, "abc", "abc", "abc"},
		{KindPath, "/x/y", Path("/x/y"), "/x/y"},
		{KindFloat, 0.9, 0.9, "0.9"},
		{KindFloat, 3, 3.0, "3"},
		{KindInt, 7, 7, "7"},
		{KindInt, 4.0, 4, "4"},
		{KindBool, true, true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.text, func(t *testing.T) {
			got, err := Normalize(tt.kind, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, Format(got))

			back, err := Parse(tt.kind, Format(got))
			require.NoError(t, err)
			assert.Equal(t, tt.want, back)
		})
	}

	_, err := Normalize(KindBool, "yes")
	assert.Error(t, err)
	for _, f := range []float64{1e20, -1e20, math.Inf(1), math.NaN(), 2.5} {
		_, err = Normalize(KindInt, f)
		assert.Error(t, err, "%v", f)
	}
	_, err = Parse(KindFloat, "fast")
	assert.Error(t, err)
	assert.Equal(t, "", Format(nil))
}
