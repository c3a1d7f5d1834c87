package models

import "testing"

func TestParsePlatform(t *testing.T) {
	t.Run("Canonical Names", func(t *testing.T) {
		for _, p := range AllPlatforms {
			got, err := ParsePlatform(string(p))
			if err != nil {
				t.Fatalf("expected no error for %s, got %v", p, err)
			}
			if got != p {
				t.Errorf("expected %s, got %s", p, got)
			}
		}
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		got, err := ParsePlatform("linkedin")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != LinkedIn {
			t.Errorf("expected LinkedIn, got %s", got)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := ParsePlatform("myspace"); err == nil {
			t.Error("expected error for unknown platform")
		}
	})
}

func TestPlatformSlug(t *testing.T) {
	if TikTok.Slug() != "tiktok" {
		t.Errorf("expected tiktok, got %s", TikTok.Slug())
	}
	if LinkedIn.Slug() != "linkedin" {
		t.Errorf("expected linkedin, got %s", LinkedIn.Slug())
	}
}

func TestCapabilities(t *testing.T) {
	t.Run("Facebook Has Messages", func(t *testing.T) {
		c := Facebook.Capabilities()
		if !c.HasMessages || c.HasPosts || c.HasManualMetrics {
			t.Errorf("unexpected capabilities for Facebook: %+v", c)
		}
	})

	t.Run("LinkedIn Has Posts And Manual Metrics", func(t *testing.T) {
		c := LinkedIn.Capabilities()
		if c.HasMessages || !c.HasPosts || !c.HasManualMetrics {
			t.Errorf("unexpected capabilities for LinkedIn: %+v", c)
		}
	})

	t.Run("Default Is Empty", func(t *testing.T) {
		if c := Snapchat.Capabilities(); c != (Capability{}) {
			t.Errorf("expected empty capabilities, got %+v", c)
		}
	})
}

func TestAccountType(t *testing.T) {
	a := SocialAccount{ID: "1", Platform: LinkedIn}
	if a.Type() != PersonalAccount {
		t.Errorf("expected personal default, got %s", a.Type())
	}

	a.AccountType = CompanyAccount
	if a.Type() != CompanyAccount {
		t.Errorf("expected company, got %s", a.Type())
	}
}

func TestMessageSender(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want string
	}{
		{"prefers sender name", Message{SenderName: "Ada", SenderID: "u1"}, "Ada"},
		{"falls back to id", Message{SenderID: "u1"}, "u1"},
		{"unknown when empty", Message{}, "Unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.msg.Sender(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
