// Package database keeps the export history of the clippings tool in SQLite.
//
//	database/
//	├── database.go      # Connection setup, migrations, exported notes
//	└── audit/           # Audit event repository
//
// The history is optional: the export command only opens a database when
// asked to, while serve mode always does.
//
//	db, err := database.NewDatabase("./clippings.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	auditRepo := audit.NewRepository(db.DB)
package database
