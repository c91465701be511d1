package persist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		FormatVersion: FormatVersion,
		NextVarID:     12,
		StageVarIDs:   []uint64{1, 2, 3, 4, 5, 6},
		Nodes: []Node{
			{
				ID:      "6f1c2b8e-6c2a-4f7e-9a51-8f3d1f0c2a11",
				Factory: "constant.float",
				Tag:     "Constant",
				Values:  []float32{0.1, 0, 0, 0},
				VarIDs:  []uint64{7},
			},
			{
				ID:      "0b7a9e35-1d4c-4b6e-8f0d-2c5e7a9b1d22",
				Factory: "sample2d",
				Tag:     "Sample2D",
				Sampler: "PointClamp",
				Texture: "textures/albedo.png",
				VarIDs:  []uint64{8, 9},
			},
		},
		Links: []Link{{Output: 7, Input: 3}},
	}
}

func TestEncode(t *testing.T) {
	out, err := Encode(sampleFile())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "format_version = 1\n")
	assert.Contains(t, text, "next_var_id    = 12\n")
	assert.Contains(t, text, `node "6f1c2b8e-6c2a-4f7e-9a51-8f3d1f0c2a11" {`)
	assert.Contains(t, text, "values  = [0.1, 0, 0, 0]")
	assert.Contains(t, text, `sampler = "PointClamp"`)
	assert.Contains(t, text, "var_ids = [1, 2, 3, 4, 5, 6]")
	assert.Contains(t, text, "link {")
}

func TestEncodeDecode(t *testing.T) {
	want := sampleFile()

	out, err := Encode(want)
	require.NoError(t, err)

	got, err := Decode(out, "doc.hcl")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded file mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax",
			src:     "format_version = \nstage {",
			wantErr: "failed to parse document",
		},
		{
			name:    "missing attribute",
			src:     "format_version = 1\nstage {\n  var_ids = []\n}\n",
			wantErr: "failed to decode document",
		},
		{
			name:    "version",
			src:     "format_version = 2\nnext_var_id = 1\nstage {\n  var_ids = []\n}\n",
			wantErr: "unsupported format_version 2",
		},
		{
			name:    "no stage",
			src:     "format_version = 1\nnext_var_id = 1\n",
			wantErr: "missing stage block",
		},
		{
			name:    "node without factory",
			src:     "format_version = 1\nnext_var_id = 2\nstage {\n  var_ids = []\n}\nnode \"a\" {\n  var_ids = [1]\n}\n",
			wantErr: "failed to decode document",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.src), "doc.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDecode_Minimal(t *testing.T) {
	f, err := Decode([]byte("format_version = 1\nnext_var_id = 7\nstage {\n  var_ids = [1, 2, 3, 4, 5, 6]\n}\n"), "doc.hcl")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), f.NextVarID)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, f.StageVarIDs)
	assert.Empty(t, f.Nodes)
	assert.Empty(t, f.Links)
}
