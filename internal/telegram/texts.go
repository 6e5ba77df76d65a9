package telegram

// UI texts in English
const (
	startText = "👋 I am a weather bot.\n\n" +
		"Ask me for current conditions, forecasts, air quality and more.\n" +
		"Set a home location with /setlocation and I can also send you a daily update — see /help."

	helpText = "Available commands:\n\n" +
		"/weather [location] — current weather\n" +
		"/forecast [location] — 5-day forecast in 3-hour steps\n" +
		"/forecast16 [location] — 16-day daily forecast\n" +
		"/airquality [location] [details] — air quality index\n" +
		"/wind [location] — wind speed and direction\n" +
		"/humidity [location] — relative humidity\n" +
		"/suntimes [location] — sunrise and sunset times\n" +
		"/alerts [location] — active weather alerts\n\n" +
		"/setlocation <location> — set your home location\n" +
		"/setunit <C|F> — set your temperature unit\n" +
		"/format <embed|plain> — set the reply format\n" +
		"/dailyupdate <H:MM> <AM|PM> <timezone> — schedule a daily weather update\n" +
		"/disableupdates — cancel the daily update\n\n" +
		"/about — about this bot\n" +
		"/bugreport — how to report a problem\n\n" +
		"Commands that take a location fall back to your saved one when you omit it."

	aboutText = "🌦 Weather bot backed by OpenWeatherMap.\n\n" +
		"Current conditions, 5-day and 16-day forecasts, air quality, wind, humidity, " +
		"sun times and weather alerts, plus an optional daily update at a time of your choosing."

	bugReportText = "🐞 Found a problem?\n\n" +
		"Send a message describing what you did, what you expected and what happened instead. " +
		"If you got an error code, include it — it pins down exactly where things went wrong."
)
