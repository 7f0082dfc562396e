package rockcoast

// advance moves the clock, the sea level and the earthquake schedule forward
// by one timestep. At most one uplift is applied per call even when several
// intervals have elapsed.
func (m *Model) advance() {
	m.time += m.cfg.Dt
	m.seaLevel += m.cfg.SeaLevelRise * m.cfg.Dt

	if m.time > m.nextQuake {
		if m.cfg.EarthquakeUplift != 0 {
			m.profile.Shift(m.cfg.EarthquakeUplift)
			m.diag.Uplifts++
			m.log.Info("earthquake", "time", m.time, "uplift", m.cfg.EarthquakeUplift, "sea_level", m.seaLevel)
		}
		m.nextQuake += m.cfg.EarthquakeInterval
	}
}
