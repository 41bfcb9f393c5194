package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startKundli runs the command in the background the way discordgo
// dispatches events, and returns a channel closed when it finishes
func startKundli(f *fixture, msg *discordgo.MessageCreate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.handler.HandleMessage(f.session, msg)
	}()
	return done
}

func waitReplies(t *testing.T, s *MockSession, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return s.replyCount() >= n }, 2*time.Second, 5*time.Millisecond)
}

func TestKundli_Completed(t *testing.T) {
	f := newFixture(t, 2*time.Second)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))

	waitReplies(t, f.session, 1)
	assert.Equal(t, "Please provide the date of birth (DD/MM/YYYY) of Marin.", f.session.lastReply())

	// someone else answering is ignored and not kept for later
	f.handler.HandleMessage(f.session, newMessage(alice, "01/01/2000"))
	f.handler.HandleMessage(f.session, newMessage(carol, "10/04/2001"))

	waitReplies(t, f.session, 2)
	assert.Equal(t, "Please provide the date of birth (DD/MM/YYYY) of gojo.", f.session.lastReply())
	f.handler.HandleMessage(f.session, newMessage(carol, "10/08/1999"))

	<-done
	require.Len(t, f.session.Complex, 1)
	embed := f.session.Complex[0].Embeds[0]
	assert.Equal(t, "🌟 Kundli Match Results 🌟", embed.Title)
	assert.Equal(t, 0xFFCC00, embed.Color)
	assert.Equal(t, "Marin and gojo's zodiac compatibility is **90%**!", embed.Description)
	assert.Equal(t, "Marin's Zodiac", embed.Fields[0].Name)
	assert.Equal(t, "Aries", embed.Fields[0].Value)
	assert.Equal(t, "Leo", embed.Fields[1].Value)
	assert.Equal(t, "90%", embed.Fields[2].Value)
	assert.False(t, embed.Fields[2].Inline)
	assert.Equal(t, 2, f.session.replyCount())
}

func TestKundli_AsymmetricFallback(t *testing.T) {
	f := newFixture(t, 2*time.Second)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))
	waitReplies(t, f.session, 1)
	f.handler.HandleMessage(f.session, newMessage(carol, "01/09/1995")) // Virgo
	waitReplies(t, f.session, 2)
	f.handler.HandleMessage(f.session, newMessage(carol, "01/03/1996")) // Pisces
	<-done

	require.Len(t, f.session.Complex, 1)
	assert.Equal(t, "50%", f.session.Complex[0].Embeds[0].Fields[2].Value)
}

func TestKundli_Timeout(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))
	<-done

	assert.Empty(t, f.session.Complex)
	assert.Equal(t, []string{
		"Please provide the date of birth (DD/MM/YYYY) of Marin.",
		"You took too long to respond with Marin's DOB. Please try again.",
	}, f.session.Replies)
}

func TestKundli_InvalidFormat(t *testing.T) {
	f := newFixture(t, 2*time.Second)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))
	waitReplies(t, f.session, 1)
	f.handler.HandleMessage(f.session, newMessage(carol, "April 10th"))
	<-done

	assert.Empty(t, f.session.Complex)
	assert.Equal(t, "Invalid DOB format! Please provide in the format DD/MM/YYYY.", f.session.lastReply())
	assert.Equal(t, 2, f.session.replyCount())
}

func TestKundli_NeedsTwoMentions(t *testing.T) {
	f := newFixture(t, time.Second)

	f.handler.HandleMessage(f.session, newMessage(carol, "--kundli <@4>", marin))

	assert.Equal(t, []string{"Please mention two users to match their Kundli (e.g., `--kundli @user1 @user2`)."}, f.session.Replies)
}

func TestKundli_OneDialoguePerUser(t *testing.T) {
	f := newFixture(t, 2*time.Second)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))
	waitReplies(t, f.session, 1)

	second := newMessage(carol, "--kundli <@1> <@2>", alice, bob)
	second.ChannelID = "other-chan"
	f.handler.HandleMessage(f.session, second)
	assert.Equal(t, "You already have a Kundli match going! Finish that one first.", f.session.lastReply())

	f.handler.HandleMessage(f.session, newMessage(carol, "10/04/2001"))
	waitReplies(t, f.session, 3)
	f.handler.HandleMessage(f.session, newMessage(carol, "10/08/1999"))
	<-done
	assert.Len(t, f.session.Complex, 1)
}

func TestKundli_ShutdownEndsDialogue(t *testing.T) {
	f := newFixture(t, time.Minute)

	done := startKundli(f, newMessage(carol, "--kundli <@4> <@5>", marin, gojo))
	waitReplies(t, f.session, 1)

	f.handler.Shutdown()
	<-done
	assert.Empty(t, f.session.Complex)
}
