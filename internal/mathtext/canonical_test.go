package mathtext

import "testing"

func TestCanonicalAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "attributes sorted",
			in:   `<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mi>x</mi></math>`,
			want: `<math display="block" xmlns="http://www.w3.org/1998/Math/MathML"><mi>x</mi></math>`,
		},
		{
			name: "style declarations sorted",
			in:   `<mrow style="padding:0;color:red;"><mn>1</mn></mrow>`,
			want: `<mrow style="color:red;padding:0;"><mn>1</mn></mrow>`,
		},
		{
			name: "text and entities kept verbatim",
			in:   `<mo>&lt;</mo><mtext>a &amp; b</mtext>`,
			want: `<mo>&lt;</mo><mtext>a &amp; b</mtext>`,
		},
		{
			name: "self-closing tag",
			in:   `<mspace width="1em" depth="0"/>`,
			want: `<mspace depth="0" width="1em"/>`,
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := canonicalAttrs(tt.in); got != tt.want {
				t.Errorf("canonicalAttrs()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestTreebloodRenderer_Deterministic(t *testing.T) {
	t.Parallel()

	r := NewTreebloodRenderer(nil)

	for _, block := range []bool{false, true} {
		first, err := r.RenderMath(`\mathbf{x}^2 + \frac{a}{b} \leq \sqrt{y}`, block)
		if err != nil {
			t.Fatal(err)
		}
		for range 50 {
			got, err := r.RenderMath(`\mathbf{x}^2 + \frac{a}{b} \leq \sqrt{y}`, block)
			if err != nil {
				t.Fatal(err)
			}
			if got != first {
				t.Fatalf("RenderMath(block=%v) not stable:\n%q\n%q", block, first, got)
			}
		}
	}
}
