// Package rsnapshot reads the parts of an rsnapshot configuration that the
// rotation scheduler needs, and builds rsnapshot command lines.
//
// Only two declarations are extracted: snapshot_root (the snapshot storage
// root, used for inhibition checks and symlink upkeep) and the ordered
// retain lines that define the retention tiers. The legacy interval keyword
// is accepted as a synonym for retain, as rsnapshot itself does. Every other
// keyword belongs to rsnapshot and is ignored.
//
// rsnapshot configuration is tab-delimited; a recognized declaration whose
// fields are separated by spaces instead is reported as an error rather
// than silently skipped.
//
//	cfg, err := rsnapshot.LoadConfig("/etc/rsnapshot.conf")
//	if err != nil {
//	    return err
//	}
//	schedule, err := rotation.NewSchedule(cfg.Tiers)
package rsnapshot
