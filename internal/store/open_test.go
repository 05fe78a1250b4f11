package store

import (
	"testing"
	_ "time/tzdata"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		password string
		wantPass string
	}{
		{
			name:     "escaped query value survives",
			dsn:      "app@tcp(db:3306)/institute?parseTime=true&loc=Asia%2FKolkata",
			password: "s3cret",
			wantPass: "s3cret",
		},
		{
			name:     "password with percent and at",
			dsn:      "app@tcp(db:3306)/institute?parseTime=true&loc=Asia%2FKolkata",
			password: "p%2F@ss%s",
			wantPass: "p%2F@ss%s",
		},
		{
			name:     "empty password keeps dsn credentials",
			dsn:      "app:inline@tcp(db:3306)/institute?parseTime=true&loc=Asia%2FKolkata",
			wantPass: "inline",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := mysqlDSN(tc.dsn, tc.password)
			require.NoError(t, err)
			assert.NotContains(t, out, "MISSING")

			c, err := mysql.ParseDSN(out)
			require.NoError(t, err)
			assert.Equal(t, "app", c.User)
			assert.Equal(t, tc.wantPass, c.Passwd)
			assert.Equal(t, "db:3306", c.Addr)
			assert.Equal(t, "institute", c.DBName)
			assert.True(t, c.ParseTime)
			require.NotNil(t, c.Loc)
			assert.Equal(t, "Asia/Kolkata", c.Loc.String())
		})
	}
}

func TestMySQLDSNRejectsGarbage(t *testing.T) {
	_, err := mysqlDSN("not a dsn?x=%zz", "pw")
	assert.Error(t, err)
}
