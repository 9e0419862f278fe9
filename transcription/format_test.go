package transcription

import "testing"

func TestFormatTranscript(t *testing.T) {
	tcs := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already clean",
			raw:  "Today I prayed on time.",
			want: "Today I prayed on time.",
		},
		{
			name: "speaker labels stripped",
			raw:  "spk_0: today I felt grateful. spk_1: that's good to hear.",
			want: "Today I felt grateful. That's good to hear.",
		},
		{
			name: "Speaker N labels stripped",
			raw:  "Speaker 0: first point. Speaker 12: second point.",
			want: "First point. Second point.",
		},
		{
			name: "whitespace collapsed",
			raw:  "  too   many\n\nspaces\there  ",
			want: "Too many spaces here",
		},
		{
			name: "sentence starts recapitalized",
			raw:  "first sentence. second one! third? yes.",
			want: "First sentence. Second one! Third? Yes.",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatTranscript(tc.raw)
			if got != tc.want {
				t.Fatalf("\nraw:\n%q\nwant:\n%q\ngot:\n%q", tc.raw, tc.want, got)
			}
		})
	}
}

func TestSupportedFormat(t *testing.T) {
	for _, ext := range []string{"mp3", ".mp3", "MP3", "wav", "m4a", "webm", "flac", "ogg", "amr", "mp4"} {
		if !SupportedFormat(ext) {
			t.Errorf("expected %q to be supported", ext)
		}
	}

	for _, ext := range []string{"", "txt", "aac", "mov", ".pdf"} {
		if SupportedFormat(ext) {
			t.Errorf("expected %q to be unsupported", ext)
		}
	}
}
