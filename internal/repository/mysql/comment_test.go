package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coursecoc/coursecoc-server/domain"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func commentColumns() []string {
	return []string{"id", "owner_type", "owner_id", "parent_id", "user_id",
		"content", "is_edited", "likes", "reply_count", "created_at"}
}

func TestCommentStoreRootMovesOwnerCounter(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `comment`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE `course` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	comment := &domain.Comment{
		OwnerType: domain.OwnerCourse,
		OwnerID:   10,
		Content:   "좋은 코스네요",
		Author:    domain.User{ID: 1},
	}
	err := repo.Store(context.Background(), comment)
	require.NoError(t, err)
	assert.EqualValues(t, 7, comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentStoreReplyMovesBothCounters(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM `comment`").
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(5, "course", 10, 0, 1, "root", false, 0, 0, now))
	mock.ExpectExec("UPDATE `comment` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `comment`").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectExec("UPDATE `course` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reply := &domain.Comment{
		OwnerType: domain.OwnerCourse,
		OwnerID:   10,
		ParentID:  5,
		Content:   "저도요",
		Author:    domain.User{ID: 2},
	}
	err := repo.Store(context.Background(), reply)
	require.NoError(t, err)
	assert.EqualValues(t, 8, reply.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentStoreReplyToReplyRejected(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// the parent is itself a reply
	mock.ExpectQuery("SELECT (.+) FROM `comment`").
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(8, "course", 10, 5, 2, "reply", false, 0, 0, now))
	mock.ExpectRollback()

	nested := &domain.Comment{
		OwnerType: domain.OwnerCourse,
		OwnerID:   10,
		ParentID:  8,
		Content:   "nested",
		Author:    domain.User{ID: 1},
	}
	err := repo.Store(context.Background(), nested)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentStoreOwnerMissing(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	comment := &domain.Comment{
		OwnerType: domain.OwnerCourse,
		OwnerID:   404,
		Content:   "유령 코스",
		Author:    domain.User{ID: 1},
	}
	err := repo.Store(context.Background(), comment)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteRootRemovesRepliesAndCounter(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `comment`").
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(5, "course", 10, 0, 1, "root", false, 0, 2, now))
	// two replies go with the root
	mock.ExpectExec("DELETE FROM `comment`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `comment`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// root plus two replies drops comment_count by three
	mock.ExpectExec("UPDATE `course` SET").
		WithArgs(-3, sqlmock.AnyArg(), 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteReplyDecrementsParent(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `comment`").
		WillReturnRows(sqlmock.NewRows(commentColumns()).
			AddRow(8, "course", 10, 5, 2, "reply", false, 0, 0, now))
	// parent reply_count goes down by one
	mock.ExpectExec("UPDATE `comment` SET").
		WithArgs(-1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `comment`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `course` SET").
		WithArgs(-1, sqlmock.AnyArg(), 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 8)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentUpdateContentMarksEdited(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `comment` SET").
		WithArgs("고친 내용", true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateContent(context.Background(), 5, "고친 내용")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentUpdateContentNotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `comment` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateContent(context.Background(), 404, "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentGetByIDNotFound(t *testing.T) {
	gdb, mock := setupMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT (.+) FROM `comment`").
		WillReturnRows(sqlmock.NewRows(commentColumns()))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
