package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// scriptedPattern maps a keyword expression to its canned responses. Patterns
// are tried in order; the first match wins.
type scriptedPattern struct {
	topic     string
	pattern   *regexp.Regexp
	responses []string
}

// Scripted is the default reply engine: ordered keyword matching over a fixed
// script, no model involved. Responses that contain %s are formatted with the
// asking user's name.
type Scripted struct {
	mu       sync.Mutex
	rng      *rand.Rand
	patterns []scriptedPattern
	fallback []string
}

// NewScripted builds the scripted responder.
func NewScripted() *Scripted {
	return &Scripted{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		patterns: []scriptedPattern{
			{
				topic:   "greeting",
				pattern: regexp.MustCompile(`(?i)\b(hello|hi|hey|bonjour|salut)\b`),
				responses: []string{
					"Hello %s! How can I help you today?",
					"Hi %s! Good to see you again. What can I do for you?",
					"Hello! I'm Bybyto, ready to answer any question about Konexa.",
				},
			},
			{
				topic:   "how-it-works",
				pattern: regexp.MustCompile(`(?i)\b(how|works?|use|using|guide|start)\b`),
				responses: []string{
					"Konexa is easy to use:\n\n1. Browse the community to see public messages\n2. Take part in the weekly polls\n3. Send private messages by clicking a member's name\n4. Customise everything in settings\n\nI can walk you through any feature in detail!",
				},
			},
			{
				topic:   "creator",
				pattern: regexp.MustCompile(`(?i)\b(creator|created|founder|rooby)\b`),
				responses: []string{
					"Konexa was built with passion by Rooby. The goal was to bring people together in a healthy, welcoming space while respecting their anonymity.",
				},
			},
			{
				topic:   "privacy",
				pattern: regexp.MustCompile(`(?i)\b(anonym\w*|privacy|private data|confidential|personal)\b`),
				responses: []string{
					"Anonymity is at the heart of Konexa. Your real name is never shown - only your username is visible to other members, even in private conversations.",
				},
			},
			{
				topic:   "poll",
				pattern: regexp.MustCompile(`(?i)\b(polls?|votes?|voting|survey)\b`),
				responses: []string{
					"Polls are published regularly on all kinds of topics. You can vote once per poll and watch the results live. Every vote is anonymous. If you have a poll idea, suggest it!",
				},
			},
			{
				topic:   "messaging",
				pattern: regexp.MustCompile(`(?i)\b(messages?|messaging|dm|conversations?|chat)\b`),
				responses: []string{
					"To reach the messaging area, open 'Messaging' in the sidebar. To message a member privately, click their name in the community feed and pick 'Chat privately'.",
				},
			},
			{
				topic:   "thanks",
				pattern: regexp.MustCompile(`(?i)\b(thanks?|thank you|thx)\b`),
				responses: []string{
					"You're welcome! Don't hesitate if you have more questions, I'm here to help.",
					"My pleasure. It's always nice helping you get the most out of Konexa!",
					"Anytime! Come back whenever you need anything.",
				},
			},
			{
				topic:   "identity",
				pattern: regexp.MustCompile(`(?i)\b(who are you|your name|bybyto)\b`),
				responses: []string{
					"I'm Bybyto, Konexa's assistant. I was built to help you find your way around the platform and answer your questions. Konexa itself was created with passion by Rooby.",
				},
			},
			{
				topic:   "settings",
				pattern: regexp.MustCompile(`(?i)\b(settings?|profile|account|preferences?)\b`),
				responses: []string{
					"You can personalise your Konexa experience in the 'Settings' section: profile, notifications, appearance and privacy options are all there.",
				},
			},
			{
				topic:   "help",
				pattern: regexp.MustCompile(`(?i)\b(help|problem|issue|bug|error|support)\b`),
				responses: []string{
					"If you hit a technical problem, describe it to me and I'll do my best to sort it out. For anything I can't fix, the 'Help' section in settings reaches the Konexa team.",
				},
			},
		},
		fallback: []string{
			"Thanks for your message! I'm Bybyto, your assistant on Konexa. How can I help you further today?",
			"I see what you mean. Could you give me a little more detail? I'm here to guide you through everything Konexa offers.",
			"Great question! I'm always learning to improve my answers. Konexa was created with passion by Rooby, and I'm here to help you get the best out of it.",
			"Interesting! Feel free to explore the different sections of Konexa to discover everything the platform offers. Is there a particular area you're curious about?",
			"I'm Bybyto, Konexa's assistant, and I'm here to guide you. What would you like to know about our community?",
		},
	}
}

// Reply matches the message against the script, first match wins, random
// generic fallback otherwise.
func (s *Scripted) Reply(_ context.Context, username, message string) (Reply, error) {
	for _, candidate := range s.patterns {
		if !candidate.pattern.MatchString(message) {
			continue
		}
		return Reply{Text: s.pick(candidate.responses, username), Topic: candidate.topic}, nil
	}

	return Reply{Text: s.pick(s.fallback, username), Topic: "generic"}, nil
}

func (s *Scripted) pick(responses []string, username string) string {
	s.mu.Lock()
	index := s.rng.Intn(len(responses))
	s.mu.Unlock()

	text := responses[index]
	if strings.Contains(text, "%s") {
		return fmt.Sprintf(text, username)
	}
	return text
}

// WelcomeMessage builds the time-of-day greeting inserted at the start of
// every fresh transcript.
func WelcomeMessage(username string, now time.Time) string {
	greeting := "Good evening"
	switch hour := now.Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	}

	return fmt.Sprintf("%s %s! 👋\n\nI'm Bybyto, your assistant on Konexa.\n\nKonexa is an anonymous community space where everyone can talk, share and open topics freely and respectfully. You can stay anonymous while building genuine connections.\n\nKonexa was created with passion by Rooby.\n\nHow can I help you today?", greeting, username)
}
