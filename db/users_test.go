package db

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestUser(t *testing.T) {
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Error(err)
		}
	}()
	c := qt.New(t)
	// test not found user
	user, err := testDB.User(testUserID)
	c.Assert(user, qt.IsNil)
	c.Assert(err, qt.Equals, ErrNotFound)
	// create a new user with the ID
	c.Assert(testDB.SetUser(&User{
		ID:    testUserID,
		Email: testUserEmail,
	}), qt.IsNil)
	// test found user
	user, err = testDB.User(testUserID)
	c.Assert(err, qt.IsNil)
	c.Assert(user, qt.Not(qt.IsNil))
	c.Assert(user.ID, qt.Equals, testUserID)
	c.Assert(user.Email, qt.Equals, testUserEmail)
	c.Assert(user.CreatedAt.IsZero(), qt.IsFalse)
}

func TestSetUser(t *testing.T) {
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Error(err)
		}
	}()
	c := qt.New(t)
	// trying to create a user without an ID
	c.Assert(testDB.SetUser(&User{Email: testUserEmail}), qt.Equals, ErrInvalidData)
	// create a valid user with an explicit creation timestamp
	createdAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.Assert(testDB.SetUser(&User{
		ID:        testUserID,
		Email:     testUserEmail,
		CreatedAt: createdAt,
	}), qt.IsNil)
	user, err := testDB.User(testUserID)
	c.Assert(err, qt.IsNil)
	c.Assert(user.CreatedAt.UTC(), qt.Equals, createdAt)
	// user records are immutable, a second insert must not overwrite
	err = testDB.SetUser(&User{
		ID:    testUserID,
		Email: "other@example.com",
	})
	c.Assert(err, qt.Equals, ErrAlreadyExists)
	user, err = testDB.User(testUserID)
	c.Assert(err, qt.IsNil)
	c.Assert(user.Email, qt.Equals, testUserEmail)
}

func TestDelUser(t *testing.T) {
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Error(err)
		}
	}()
	c := qt.New(t)
	c.Assert(testDB.DelUser(&User{}), qt.Equals, ErrInvalidData)
	c.Assert(testDB.SetUser(&User{ID: testUserID, Email: testUserEmail}), qt.IsNil)
	c.Assert(testDB.DelUser(&User{ID: testUserID}), qt.IsNil)
	_, err := testDB.User(testUserID)
	c.Assert(err, qt.Equals, ErrNotFound)
}
