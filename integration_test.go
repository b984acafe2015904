package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gonotes/db"
	"gonotes/models"
)

// Setup a test server with a fresh temp database
func setupTestServer(t *testing.T) (*httptest.Server, *http.Client, *gorm.DB) {
	t.Helper()

	gdb, err := db.Connect(filepath.Join(t.TempDir(), "gonotes-test.db"))
	require.NoError(t, err)

	store := newStore("test-secret")
	ts := httptest.NewServer(setupRouter(gdb, store, zap.NewNop(), "templates"))
	t.Cleanup(ts.Close)

	// Client with cookie jar — follows redirects automatically
	jar, _ := cookiejar.New(nil)
	client := ts.Client()
	client.Jar = jar

	return ts, client, gdb
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func postForm(t *testing.T, ts *httptest.Server, client *http.Client, path string, values url.Values) string {
	t.Helper()
	resp, err := client.PostForm(ts.URL+path, values)
	require.NoError(t, err)
	return readBody(t, resp)
}

func getBody(t *testing.T, ts *httptest.Server, client *http.Client, path string) string {
	t.Helper()
	resp, err := client.Get(ts.URL + path)
	require.NoError(t, err)
	return readBody(t, resp)
}

func signUp(t *testing.T, ts *httptest.Server, client *http.Client, username, password string) string {
	t.Helper()
	return postForm(t, ts, client, "/sign_up", url.Values{
		"username": {username},
		"password": {password},
	})
}

func logIn(t *testing.T, ts *httptest.Server, client *http.Client, username, password string) string {
	t.Helper()
	return postForm(t, ts, client, "/log_in", url.Values{
		"username": {username},
		"password": {password},
	})
}

func signUpAndLogIn(t *testing.T, ts *httptest.Server, client *http.Client, username, password string) string {
	t.Helper()
	signUp(t, ts, client, username, password)
	return logIn(t, ts, client, username, password)
}

func logOut(t *testing.T, ts *httptest.Server, client *http.Client) string {
	t.Helper()
	return getBody(t, ts, client, "/log_out")
}

func addNote(t *testing.T, ts *httptest.Server, client *http.Client, title, body string) string {
	t.Helper()
	return postForm(t, ts, client, "/notes/new", url.Values{
		"title": {title},
		"body":  {body},
	})
}

func userCount(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	return count
}

func TestSignUp(t *testing.T) {
	ts, client, gdb := setupTestServer(t)

	// Successful sign-up redirects to the log-in page with a flash
	body := signUp(t, ts, client, "alice", "secret")
	assert.Contains(t, body, "You were successfully signed up and can log in now")
	assert.EqualValues(t, 1, userCount(t, gdb))

	var user models.User
	require.NoError(t, gdb.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "secret", user.PasswordHash, "password must not be stored in plaintext")

	// Duplicate username is rejected and writes nothing
	body = signUp(t, ts, client, "alice", "other")
	assert.Contains(t, body, "The username is already taken")
	assert.EqualValues(t, 1, userCount(t, gdb))

	// Empty username
	body = signUp(t, ts, client, "", "secret")
	assert.Contains(t, body, "You have to enter a username")
	assert.EqualValues(t, 1, userCount(t, gdb))

	// Empty password never creates a row
	body = signUp(t, ts, client, "bob", "")
	assert.Contains(t, body, "You have to enter a password")
	assert.EqualValues(t, 1, userCount(t, gdb))
}

func TestSignUpRedirectsWhenLoggedIn(t *testing.T) {
	ts, client, _ := setupTestServer(t)

	signUpAndLogIn(t, ts, client, "alice", "secret")

	resp, err := client.Get(ts.URL + "/sign_up")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, "/", resp.Request.URL.Path)
}

func TestLogInLogOut(t *testing.T) {
	ts, client, _ := setupTestServer(t)

	body := signUpAndLogIn(t, ts, client, "alice", "secret")
	assert.Contains(t, body, "You were logged in")

	body = logOut(t, ts, client)
	assert.Contains(t, body, "You were logged out")

	// Wrong password and unknown username yield the same generic message
	body = logIn(t, ts, client, "alice", "wrong")
	assert.Contains(t, body, "Username or password are incorrect")

	body = logIn(t, ts, client, "nobody", "wrong")
	assert.Contains(t, body, "Username or password are incorrect")
}

func TestLogOutWithoutSession(t *testing.T) {
	ts, client, _ := setupTestServer(t)

	// Log-out works for anonymous callers too
	body := logOut(t, ts, client)
	assert.Contains(t, body, "You were logged out")
}

func TestNotesRequireLogin(t *testing.T) {
	ts, client, _ := setupTestServer(t)

	for _, path := range []string{"/notes", "/notes/new"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		readBody(t, resp)
		assert.Equal(t, "/log_in", resp.Request.URL.Path, "anonymous %s should land on the log-in page", path)
	}
}

func TestNoteCreation(t *testing.T) {
	ts, client, _ := setupTestServer(t)
	signUpAndLogIn(t, ts, client, "alice", "secret")

	body := addNote(t, ts, client, "Shopping", "some **bold** text")
	assert.Contains(t, body, "Your note was saved")

	body = getBody(t, ts, client, "/notes")
	assert.Contains(t, body, "Shopping")
	assert.Contains(t, body, "<strong>bold</strong>", "note body should be rendered as Markdown")

	// Raw HTML in the Markdown source is not passed through
	addNote(t, ts, client, "Sneaky", "<script>alert(1)</script>")
	body = getBody(t, ts, client, "/notes")
	assert.NotContains(t, body, "<script>alert(1)</script>")

	// Missing title re-renders the form with the error
	body = addNote(t, ts, client, "", "body only")
	assert.Contains(t, body, "You have to enter a title")
}

func TestNoteOwnership(t *testing.T) {
	ts, client, _ := setupTestServer(t)

	signUpAndLogIn(t, ts, client, "alice", "secret")
	addNote(t, ts, client, "alice private note", "only for alice")
	logOut(t, ts, client)

	signUpAndLogIn(t, ts, client, "bob", "secret")
	addNote(t, ts, client, "bob note", "bob stuff")

	body := getBody(t, ts, client, "/notes")
	assert.Contains(t, body, "bob note")
	assert.NotContains(t, body, "alice private note")

	// Someone else's note id behaves like a missing one
	resp, err := client.Get(ts.URL + "/notes/1/edit")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNoteEditAndDelete(t *testing.T) {
	ts, client, _ := setupTestServer(t)
	signUpAndLogIn(t, ts, client, "alice", "secret")

	addNote(t, ts, client, "Draft", "first version")

	body := getBody(t, ts, client, "/notes/1/edit")
	assert.Contains(t, body, "first version")

	body = postForm(t, ts, client, "/notes/1/edit", url.Values{
		"title": {"Final"},
		"body":  {"second version"},
	})
	assert.Contains(t, body, "Your note was updated")

	body = getBody(t, ts, client, "/notes")
	assert.Contains(t, body, "Final")
	assert.Contains(t, body, "second version")
	assert.NotContains(t, body, "first version")

	body = postForm(t, ts, client, "/notes/1/delete", nil)
	assert.Contains(t, body, "Your note was deleted")

	body = getBody(t, ts, client, "/notes")
	assert.NotContains(t, body, "Final")
	assert.Contains(t, body, "No notes yet")
}
