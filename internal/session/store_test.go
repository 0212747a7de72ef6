package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/models"
)

func TestStore_Empty(t *testing.T) {
	s := NewStore()

	sess := s.Session()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, s.Token())
}

func TestStore_SetCredentials(t *testing.T) {
	s := NewStore()
	user := models.User{ID: "u1", Username: "alice", Email: "a@x", Role: "user"}

	s.SetCredentials(user, "t1")

	sess := s.Session()
	require.NotNil(t, sess.User)
	assert.Equal(t, user, *sess.User)
	assert.Equal(t, "t1", sess.Token)
	assert.Equal(t, "t1", s.Token())
	assert.True(t, sess.Authenticated())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.SetCredentials(models.User{ID: "u1"}, "t1")

	s.Clear()

	sess := s.Session()
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
}

func TestStore_SessionReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetCredentials(models.User{ID: "u1", Username: "alice"}, "t1")

	sess := s.Session()
	sess.User.Username = "mallory"

	assert.Equal(t, "alice", s.Session().User.Username)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetCredentials(models.User{ID: "u1"}, "t1")
		}()
		go func() {
			defer wg.Done()
			sess := s.Session()
			// user and token are observed together
			assert.Equal(t, sess.User != nil, sess.Token != "")
		}()
	}
	wg.Wait()

	s.Clear()
	assert.False(t, s.Session().Authenticated())
}
