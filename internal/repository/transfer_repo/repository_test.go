package transfer_repo

import (
	"testing"
	"time"
	"wager_engine/internal/model"

	"github.com/google/uuid"
)

func TestTransferQueries(t *testing.T) {
	tr := &model.Transfer{ID: uuid.New(), From: 1, To: 2, Amount: 40, CreatedAt: time.Now()}

	testCases := []struct {
		name string
		sql  func() (string, []interface{}, error)
		want string
		args []interface{}
	}{
		{
			name: "insert",
			sql:  insertQuery(tr).ToSql,
			want: "INSERT INTO transfers (id,from_id,to_id,amount,created_at) VALUES ($1,$2,$3,$4,$5)",
			args: []interface{}{tr.ID, 1, 2, int64(40), tr.CreatedAt},
		},
		{
			name: "history",
			sql:  historyQuery(7, 20).ToSql,
			want: "SELECT id, from_id, to_id, amount, created_at FROM transfers WHERE (from_id = $1 OR to_id = $2) ORDER BY created_at DESC LIMIT 20",
			args: []interface{}{7, 7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlStr, args, err := tc.sql()
			if err != nil {
				t.Fatal(err)
			}
			if sqlStr != tc.want {
				t.Errorf("sql = %q\nwant  %q", sqlStr, tc.want)
			}
			if len(args) != len(tc.args) {
				t.Fatalf("args = %v, want %v", args, tc.args)
			}
			for i := range args {
				if args[i] != tc.args[i] {
					t.Errorf("arg %d = %v, want %v", i, args[i], tc.args[i])
				}
			}
		})
	}
}
