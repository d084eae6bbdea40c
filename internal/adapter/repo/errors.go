package repo

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers we translate into domain errors.
const (
	mysqlErrDupEntry        = 1062 // unique key violation
	mysqlErrRowIsReferenced = 1451 // FK RESTRICT on delete
)

func isDupEntry(err error) bool      { return mysqlErrNumber(err) == mysqlErrDupEntry }
func isRowReferenced(err error) bool { return mysqlErrNumber(err) == mysqlErrRowIsReferenced }

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}
