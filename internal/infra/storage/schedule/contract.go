package schedule

import "github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
