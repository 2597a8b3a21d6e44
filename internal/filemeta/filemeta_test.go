package filemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Metadata
	}{
		{
			name:     "full qualtrics export name",
			filename: "EMCS+Group+-+1501+-+Section+3+-+sp2024+-+Post_June+13,+2025_06.14.csv",
			want:     Metadata{CourseName: "1501", Semester: "sp2024", PrePost: "Post"},
		},
		{
			name:     "long season names",
			filename: "survey_Fall2024_Pre.xlsx",
			want:     Metadata{CourseName: "", Semester: "fa2024", PrePost: "Pre"},
		},
		{
			name:     "season with space before year",
			filename: "1203 Summer 2025 post.csv",
			want:     Metadata{CourseName: "1203", Semester: "su2025", PrePost: "Post"},
		},
		{
			name:     "case insensitive tokens",
			filename: "2301-SP2024-PRE.csv",
			want:     Metadata{CourseName: "2301", Semester: "sp2024", PrePost: "Pre"},
		},
		{
			name:     "nothing recognizable",
			filename: "export.csv",
			want:     Metadata{},
		},
		{
			name:     "five digit number is not a course code",
			filename: "survey_12345.csv",
			want:     Metadata{},
		},
		{
			name:     "nested path uses base name only",
			filename: "uploads/fa2023/1501_pre.csv",
			want:     Metadata{CourseName: "1501", Semester: "", PrePost: "Pre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.filename))
		})
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "cleaned_master_data.csv", OutputName(Metadata{}))
	assert.Equal(t, "1501_cleaned.csv", OutputName(Metadata{CourseName: "1501"}))
}
